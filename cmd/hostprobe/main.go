package main

import (
	"github.com/NVIDIA/hostprobe/pkg/cli"
)

func main() {
	cli.Execute()
}
