// Command keygen prints fresh base64-encoded RSA key pairs for the access
// and refresh token env vars.
package main

import (
	"fmt"
	"log"

	"github.com/jrsteele09/go-session-auth/token"
)

func main() {
	for _, prefix := range []string{"ACCESS", "REFRESH"} {
		keyPair, err := token.GenerateKeyPair(2048)
		if err != nil {
			log.Fatalf("GenerateKeyPair: %s", err)
		}

		publicB64, err := keyPair.ExportPublicKeyB64()
		if err != nil {
			log.Fatalf("ExportPublicKeyB64: %s", err)
		}

		fmt.Printf("%s_TOKEN_PRIVATE_KEY=%s\n", prefix, keyPair.ExportPrivateKeyB64())
		fmt.Printf("%s_TOKEN_PUBLIC_KEY=%s\n\n", prefix, publicB64)
	}
}
