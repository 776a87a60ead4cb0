package main

import "github.com/Nackophilz/fankai-jellyfin/cmd"

func main() {
	cmd.Execute()
}
