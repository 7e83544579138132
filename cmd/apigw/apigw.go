package main

import (
	"os"

	"github.com/chenwei67/apigw"
)

func main() {
	apigw.NewEntrypoint().Run(os.Args)
}
