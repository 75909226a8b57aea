package main

import "github.com/gaulthiergain/syscalls-heatmap/cmd"

func main() {
	cmd.Execute()
}
