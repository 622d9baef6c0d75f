// Command httpd runs the VOC insight HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/webboardlab/voc-insight/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "voc-insight: %v\n", err)
		os.Exit(1)
	}
}
