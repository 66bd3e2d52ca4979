package main

import (
	"voxdemo/cmd"
)

func main() {
	cmd.Execute()
}
