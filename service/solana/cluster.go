package solana

import (
	"fmt"
	"strings"
)

// Cluster names a Solana deployment reachable at a fixed RPC endpoint.
type Cluster string

const (
	Devnet   Cluster = "devnet"
	Localnet Cluster = "localnet"
	Mainnet  Cluster = "mainnet"
)

// Clusters lists every supported cluster in display order.
var Clusters = []Cluster{Devnet, Localnet, Mainnet}

// ParseCluster maps a cluster name to a Cluster. Matching ignores case.
func ParseCluster(name string) (Cluster, error) {
	want := Cluster(strings.ToLower(strings.TrimSpace(name)))
	for _, c := range Clusters {
		if c == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown cluster %q (expected one of %s)", name, ClusterNames())
}

// ClusterNames returns the supported cluster names as a comma-separated list.
func ClusterNames() string {
	names := make([]string, len(Clusters))
	for i, c := range Clusters {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

// URL returns the JSON-RPC endpoint for the cluster.
func (c Cluster) URL() string {
	switch c {
	case Localnet:
		return "http://localhost:8899"
	case Mainnet:
		return "https://api.mainnet-beta.solana.com"
	default:
		return "https://api.devnet.solana.com"
	}
}

// WebsocketURL returns the pubsub endpoint used for confirmation subscriptions.
func (c Cluster) WebsocketURL() string {
	switch c {
	case Localnet:
		return "ws://localhost:8900"
	case Mainnet:
		return "wss://api.mainnet-beta.solana.com"
	default:
		return "wss://api.devnet.solana.com"
	}
}

// SupportsAirdrop reports whether the cluster runs a faucet.
func (c Cluster) SupportsAirdrop() bool {
	return c == Devnet || c == Localnet
}

func (c Cluster) String() string {
	return string(c)
}
