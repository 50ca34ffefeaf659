//go:build ignore

// This script prints a random JWT_SECRET_KEY for device tokens.
// Run with: go run scripts/generate_keys.go [-bytes 32]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
)

// minBytes keeps the encoded key above the 16 character minimum enforced at startup.
const minBytes = 16

func main() {
	size := flag.Int("bytes", 32, "number of random bytes in the key")
	flag.Parse()

	if *size < minBytes {
		fmt.Fprintf(os.Stderr, "key must have at least %d bytes\n", minBytes)
		os.Exit(2)
	}

	key := make([]byte, *size)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("# Device token signing key for the count service")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", base64.StdEncoding.EncodeToString(key))
}
