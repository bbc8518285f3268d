package x402

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/solpay/x402/signature"
)

// Network identifies the Solana cluster payments settle on.
type Network string

const (
	NetworkDevnet  Network = "solana:devnet"
	NetworkMainnet Network = "solana:mainnet"
)

const (
	sdkName    = "x402-go"
	sdkVersion = "1.0.0"

	defaultFacilitatorID  = "facilitator.payai.network"
	defaultFacilitatorURL = "https://facilitator.payai.network"
)

// Client calls the SolPay x402 payment API on behalf of a single merchant.
// It is immutable after [New] and safe for concurrent use.
type Client struct {
	apiBase        string
	merchantWallet string
	network        Network
	cfg            config
	signer         *signature.Signer
}

// New builds a [Client] for the given API base URL, merchant wallet address,
// and network. The facilitator defaults to facilitator.payai.network unless
// overridden with [WithFacilitator].
func New(apiBase, merchantWallet string, network Network, opts ...Option) (*Client, error) {
	apiBase = strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if apiBase == "" {
		return nil, errors.New("x402: api base URL is required")
	}
	if strings.TrimSpace(merchantWallet) == "" {
		return nil, errors.New("x402: merchant wallet is required")
	}
	switch network {
	case NetworkDevnet, NetworkMainnet:
	case "":
		return nil, errors.New("x402: network is required")
	default:
		return nil, fmt.Errorf("x402: unsupported network %q", network)
	}

	cfg := config{
		facilitatorID:  defaultFacilitatorID,
		facilitatorURL: defaultFacilitatorURL,
		httpClient:     http.DefaultClient,
		userAgent:      fmt.Sprintf("solpay-%s/%s", sdkName, sdkVersion),
		clock:          time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	c := &Client{
		apiBase:        apiBase,
		merchantWallet: merchantWallet,
		network:        network,
		cfg:            cfg,
	}
	if len(cfg.signingKey) > 0 {
		c.signer = &signature.Signer{Key: cfg.signingKey}
	}
	return c, nil
}

// MerchantWallet returns the wallet address payments are routed to.
func (c *Client) MerchantWallet() string { return c.merchantWallet }

// Network returns the configured settlement network.
func (c *Client) Network() Network { return c.network }

func (c *Client) logDebug(msg string, args ...any) {
	if c.cfg.logger == nil {
		return
	}
	c.cfg.logger.Debug(msg, args...)
}
