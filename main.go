package main

import "github.com/mouse-blink/bookimport/cmd"

func main() {
	cmd.Execute()
}
