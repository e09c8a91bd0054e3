// Command modkit inspects and edits the persisted feature configuration.
//
// It works on the configured store only: changes take effect the next time
// the host process starts or reloads its features.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openStore).Execute(); err != nil {
		os.Exit(1)
	}
}
