package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"aidanwoods.dev/go-paseto"
)

const envFile = ".env"

type keyPair struct {
	Private string
	Public  string
}

func generate() keyPair {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	return keyPair{
		Private: base64.StdEncoding.EncodeToString(secretKey.ExportBytes()),
		Public:  base64.StdEncoding.EncodeToString(secretKey.Public().ExportBytes()),
	}
}

func printKeys(w io.Writer, keys keyPair) {
	fmt.Fprintf(w, "Generated PASETO v4 key pair:\n\n")
	fmt.Fprintf(w, "Private Key (keep this secret!):\n%s\n\n", keys.Private)
	fmt.Fprintf(w, "Public Key:\n%s\n\n", keys.Public)
}

// updateEnvContent replaces the PASETO key lines in an env file, appending
// whichever is missing. Comments and unrelated lines are kept as is.
func updateEnvContent(content string, keys keyPair) string {
	var out []string
	var foundPrivate, foundPublic bool
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			out = append(out, line)
		case strings.HasPrefix(trimmed, "PASETO_PRIVATE_KEY="):
			out = append(out, "PASETO_PRIVATE_KEY="+keys.Private)
			foundPrivate = true
		case strings.HasPrefix(trimmed, "PASETO_PUBLIC_KEY="):
			out = append(out, "PASETO_PUBLIC_KEY="+keys.Public)
			foundPublic = true
		default:
			out = append(out, line)
		}
	}
	if len(out) == 1 && out[0] == "" {
		out = out[:0]
	}
	if !foundPrivate {
		out = append(out, "PASETO_PRIVATE_KEY="+keys.Private)
	}
	if !foundPublic {
		out = append(out, "PASETO_PUBLIC_KEY="+keys.Public)
	}
	return strings.Join(out, "\n") + "\n"
}

func main() {
	keys := generate()
	printKeys(os.Stdout, keys)

	if len(os.Args) < 2 || os.Args[1] != "--write-env" {
		fmt.Println("Note: Copy these values to your .env file, or rerun with --write-env:")
		fmt.Printf("PASETO_PRIVATE_KEY=%s\n", keys.Private)
		fmt.Printf("PASETO_PUBLIC_KEY=%s\n", keys.Public)
		return
	}

	content, err := os.ReadFile(envFile)
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to read %s: %v", envFile, err)
	}
	if err := os.WriteFile(envFile, []byte(updateEnvContent(string(content), keys)), 0o600); err != nil {
		log.Fatalf("Failed to write %s: %v", envFile, err)
	}
	fmt.Printf("Updated %s with new keys\n", envFile)
}
