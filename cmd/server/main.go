package main

import (
	"github.com/nguyentranbao-ct/product-dash/cmd"
)

func main() {
	cmd.Execute()
}
