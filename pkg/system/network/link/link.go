package network_link

import (
	"net"

	"github.com/vishvananda/netlink"
)

// The slice of rtnetlink we need to switch a wireless
// interface on and off.
type NetLink interface {
	LinkByName(name string) (netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	LinkSetDown(link netlink.Link) error
}

type netLink struct{}

func New() NetLink {
	return &netLink{}
}

func (nl *netLink) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

func (nl *netLink) LinkSetUp(link netlink.Link) error {
	return netlink.LinkSetUp(link)
}

func (nl *netLink) LinkSetDown(link netlink.Link) error {
	return netlink.LinkSetDown(link)
}

// IsUp reports whether the link is administratively up.
func IsUp(link netlink.Link) bool {
	return link.Attrs().Flags&net.FlagUp != 0
}
