package main

import (
	"github.com/qmm-dev/s3check/cmd"
)

func main() {
	cmd.Execute()
}
