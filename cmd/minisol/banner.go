package main

import (
	"fmt"
	"io"

	"github.com/brojonat/minisol/service/solana"
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

const bannerText = "MINISOLCLI"

// printBanner renders the ASCII-art title and the active cluster.
// The banner is advisory output; nothing parses it.
func printBanner(w io.Writer, cluster solana.Cluster) {
	art := figure.NewFigure(bannerText, "", true)
	color.New(color.FgRed, color.Bold).Fprintln(w, art.String())
	color.New(color.FgHiRed).Fprintln(w, "Your Mini Solana CLI for blockchain interactions")
	fmt.Fprintf(w, "Cluster: %s (%s)\n\n", cluster, cluster.URL())
}
