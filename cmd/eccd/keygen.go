package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/core/util/qrcode"
)

type keygenConfig struct {
	curve        string
	out          string
	qrcode       string
	uncompressed bool
}

// keyOutput keygen 的标准输出
type keyOutput struct {
	Curve      string   `json:"curve"`
	PrivateKey string   `json:"private_key"`
	PublicKey  string   `json:"public_key"`
	Files      []string `json:"files,omitempty"`
}

func keygenCmd(root *rootConfig) {
	var cfg keygenConfig
	flags := ff.NewFlagSet("keygen")
	flags.AddFlag(ff.FlagConfig{
		LongName: "curve",
		Value:    ffval.NewValueDefault(&cfg.curve, ecc.Secp256r1.String()),
		Usage:    "curve name or bit length",
	})
	flags.AddFlag(ff.FlagConfig{
		ShortName: 'o',
		LongName:  "out",
		Value:     ffval.NewValueDefault(&cfg.out, ""),
		Usage:     "write private.pem and public.pem into this directory",
	})
	flags.AddFlag(ff.FlagConfig{
		LongName: "qrcode",
		Value:    ffval.NewValueDefault(&cfg.qrcode, ""),
		Usage:    "write the public key as a PNG QR code to this file",
	})
	flags.AddFlag(ff.FlagConfig{
		LongName:  "uncompressed",
		Value:     ffval.NewValueDefault(&cfg.uncompressed, false),
		Usage:     "print the public key in 0x04 form",
		NoDefault: true,
	})

	cmd := &ff.Command{
		Name:      "keygen",
		Usage:     appName + " keygen [FLAGS]",
		ShortHelp: "generate a key pair",
		Flags:     flags,
		Exec: func(ctx context.Context, args []string) error {
			return cfg.exec(os.Stdout)
		},
	}
	root.command.Subcommands = append(root.command.Subcommands, cmd)
}

func (c *keygenConfig) exec(w io.Writer) error {
	id, err := ecc.ParseCurveID(c.curve)
	if err != nil {
		return err
	}

	priv, err := ecies.GenerateKey(id)
	if err != nil {
		return err
	}
	defer priv.Destroy()

	public := priv.Public().Bytes(!c.uncompressed)
	out := keyOutput{
		Curve:      id.String(),
		PrivateKey: base64.StdEncoding.EncodeToString(priv.Bytes()),
		PublicKey:  base64.StdEncoding.EncodeToString(public),
	}

	if c.out != "" {
		if err := os.MkdirAll(c.out, 0o700); err != nil {
			return err
		}
		privPath := filepath.Join(c.out, "private.pem")
		if err := ecies.SavePrivateKey(priv, privPath); err != nil {
			return err
		}
		pubPath := filepath.Join(c.out, "public.pem")
		if err := ecies.SavePublicKey(priv.Public(), pubPath); err != nil {
			return err
		}
		out.Files = append(out.Files, privPath, pubPath)
	}

	if c.qrcode != "" {
		content := qrcode.KeyContent(id.String(), public)
		if err := qrcode.WriteFile(content, qrcode.DefaultSize, qrcode.Medium, c.qrcode); err != nil {
			return fmt.Errorf("write qrcode: %w", err)
		}
		out.Files = append(out.Files, c.qrcode)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
