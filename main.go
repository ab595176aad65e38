package main

import (
	_ "go.uber.org/automaxprocs"
	"infinitech-web/cmd"
)

func main() {
	cmd.Start()
}
