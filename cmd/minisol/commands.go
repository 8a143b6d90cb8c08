package main

import (
	"fmt"

	"github.com/brojonat/minisol/service/solana"
	"github.com/brojonat/minisol/service/wallet"
	"github.com/urfave/cli/v2"
)

func createCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:    "create",
		Aliases: []string{"create-account"},
		Usage:   "Generate a new keypair and write it to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "outfile",
				Aliases: []string{"o"},
				Value:   wallet.DefaultKeypairPath,
				Usage:   "Where to write the keypair (overwritten if it exists)",
			},
		},
		Action: instrument(s, "create", func(c *cli.Context) error {
			outfile := c.String("outfile")

			key, err := wallet.NewKeypair()
			if err != nil {
				return fmt.Errorf("failed to generate keypair: %w", err)
			}
			if err := wallet.WriteKeypairFile(outfile, key); err != nil {
				return err
			}

			s.logger.Info("keypair written", "path", outfile)
			fmt.Fprintf(c.App.Writer, "Wrote new keypair to %s\n", outfile)
			fmt.Fprintf(c.App.Writer, "Pubkey: %s\n", key.PublicKey())
			return nil
		}),
	}
}

func addressCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "address",
		Usage: "Print the public key of a keypair file or address",
		Flags: []cli.Flag{keyFlag(false)},
		Action: instrument(s, "address", func(c *cli.Context) error {
			pubkey, err := wallet.Resolve(c.String("key"))
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, pubkey)
			return nil
		}),
	}
}

func balanceCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "Show the SOL balance of a keypair file or address",
		Flags: []cli.Flag{keyFlag(false)},
		Action: instrument(s, "balance", func(c *cli.Context) error {
			pubkey, err := wallet.Resolve(c.String("key"))
			if err != nil {
				return err
			}

			lamports, err := s.client.Balance(c.Context, pubkey)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Balance: %s SOL\n", wallet.FormatSOL(lamports))
			return nil
		}),
	}
}

func airdropCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "airdrop",
		Usage: "Request SOL from the cluster faucet (devnet and localnet)",
		Flags: []cli.Flag{
			keyFlag(true),
			amountFlag(),
		},
		Action: instrument(s, "airdrop", func(c *cli.Context) error {
			pubkey, err := wallet.Resolve(c.String("key"))
			if err != nil {
				return err
			}
			lamports, err := wallet.ToLamports(c.Float64("amount"))
			if err != nil {
				return err
			}

			sig, err := s.client.RequestAirdrop(c.Context, pubkey, lamports)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Airdrop signature: %s\n", sig)

			confirmed, err := s.client.ConfirmTransaction(c.Context, sig)
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("%w: %s", solana.ErrAirdropNotConfirmed, sig)
			}
			fmt.Fprintln(c.App.Writer, "Airdrop confirmed")

			balance, err := s.client.Balance(c.Context, pubkey)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "New balance: %s SOL\n", wallet.FormatSOL(balance))
			return nil
		}),
	}
}

func sendCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Transfer SOL from a keypair file to another account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Value:   wallet.DefaultKeypairPath,
				Usage:   "Keypair file of the sender (pays the fee)",
			},
			&cli.StringFlag{
				Name:     "to",
				Aliases:  []string{"t"},
				Required: true,
				Usage:    "Recipient keypair file or base58 address",
			},
			amountFlag(),
		},
		Action: instrument(s, "send", func(c *cli.Context) error {
			sender, err := wallet.ReadKeypairFile(c.String("from"))
			if err != nil {
				return err
			}
			recipient, err := wallet.Resolve(c.String("to"))
			if err != nil {
				return err
			}
			lamports, err := wallet.ToLamports(c.Float64("amount"))
			if err != nil {
				return err
			}

			result, err := s.client.Transfer(c.Context, solana.TransferParams{
				From:     sender,
				To:       recipient,
				Lamports: lamports,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Transfer complete: %s\n", result.Signature)
			fmt.Fprintf(c.App.Writer, "Sent %s SOL to %s\n", wallet.FormatSOL(result.Lamports), result.To)
			return nil
		}),
	}
}

func keyFlag(required bool) cli.Flag {
	f := &cli.StringFlag{
		Name:     "key",
		Aliases:  []string{"k"},
		Required: required,
		Usage:    "Keypair file or base58 address",
	}
	if !required {
		f.Value = wallet.DefaultKeypairPath
	}
	return f
}

func amountFlag() cli.Flag {
	return &cli.Float64Flag{
		Name:     "amount",
		Aliases:  []string{"a"},
		Required: true,
		Usage:    "Amount in SOL",
	}
}
