package x402

import (
	"testing"
)

func newTestClient(t *testing.T, apiBase string, opts ...Option) *Client {
	t.Helper()
	client, err := New(apiBase, "MerChAnTWaLLeT111111111111111111", NetworkDevnet, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewRequiresConfiguration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		apiBase string
		wallet  string
		network Network
	}{
		{"missing api base", "", "wallet", NetworkDevnet},
		{"missing wallet", "https://api.solpay.cash", "", NetworkDevnet},
		{"missing network", "https://api.solpay.cash", "wallet", ""},
		{"unknown network", "https://api.solpay.cash", "wallet", "solana:testnet"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.apiBase, tc.wallet, tc.network); err == nil {
				t.Fatalf("expected configuration error")
			}
		})
	}
}

func TestNewAcceptsBothNetworks(t *testing.T) {
	t.Parallel()

	for _, network := range []Network{NetworkDevnet, NetworkMainnet} {
		client, err := New("https://api.solpay.cash/", "wallet", network)
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		if client.Network() != network {
			t.Fatalf("expected network %s got %s", network, client.Network())
		}
		if client.MerchantWallet() != "wallet" {
			t.Fatalf("unexpected merchant wallet %q", client.MerchantWallet())
		}
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.solpay.cash///")
	if client.apiBase != "https://api.solpay.cash" {
		t.Fatalf("expected trimmed base URL, got %q", client.apiBase)
	}
}
