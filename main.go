package main

import (
	"embed"
	"io/fs"
	"os"

	"scythe/cmd"
)

//go:embed web/static
var static embed.FS

func main() {
	sub, err := fs.Sub(static, "web/static")
	if err != nil {
		panic(err)
	}
	if err := cmd.Execute(sub); err != nil {
		os.Exit(1)
	}
}
