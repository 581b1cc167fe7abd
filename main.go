package main

import "github.com/klytics/stampkit/cmd"

func main() {
	cmd.Execute()
}
