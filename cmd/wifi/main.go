package main

import "github.com/dogeorg/wifihelper/cmd/wifi/cmd"

func main() {
	cmd.Execute()
}
