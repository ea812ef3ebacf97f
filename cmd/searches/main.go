package main

import (
	"context"

	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd().ExecuteContext(context.Background()))
}
