// sae-pk-password is a small command-line tool for working with SAE-PK
// passwords and AP key provisioning strings.
//
// Usage:
//
//	sae-pk-password validate <password>
//	sae-pk-password encode -bits N <hex>
//	sae-pk-password decode <password>
//	sae-pk-password provision <hex-M> <base64-der-private-key>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/hostapd-go/sae-pk/pkg/base32pw"
	"github.com/hostapd-go/sae-pk/pkg/saepk"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "provision":
		err = runProvision(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "sae-pk-password: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  sae-pk-password validate <password>
  sae-pk-password encode -bits N <hex>
  sae-pk-password decode <password>
  sae-pk-password provision <hex-M> <base64-der-private-key>
`)
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("validate requires exactly one password argument")
	}
	password := fs.Arg(0)
	if base32pw.ValidPassword(password) {
		fmt.Println("valid")
		return nil
	}
	fmt.Println("invalid")
	os.Exit(1)
	return nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	bits := fs.Int("bits", 0, "number of significant bits in the input")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("encode requires exactly one hex argument")
	}
	raw, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("decode hex input: %w", err)
	}
	lenBits := *bits
	if lenBits == 0 {
		lenBits = 8 * len(raw)
	}
	encoded, err := base32pw.Encode(raw, lenBits)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Println(encoded)
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("decode requires exactly one password argument")
	}
	raw, err := base32pw.Decode(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Println(hex.EncodeToString(raw))
	return nil
}

func runProvision(args []string) error {
	fs := flag.NewFlagSet("provision", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("provision requires a Modifier hex string and a base64 DER private key")
	}
	provisioning := fs.Arg(0) + ":" + fs.Arg(1)
	container, err := saepk.ParseAPKeyContainer(provisioning)
	if err != nil {
		return fmt.Errorf("parse provisioning string: %w", err)
	}
	fmt.Printf("group: %d\n", container.Group)
	fmt.Printf("spki_len: %d\n", len(container.PubKey))
	fmt.Printf("m: %x\n", container.M)
	return nil
}
