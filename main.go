package main

import "github.com/skardyy/mcat/cmd"

func main() {
	cmd.Execute()
}
