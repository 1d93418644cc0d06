package rpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	pkgrpc "github.com/goran-ethernal/SubstrateScanner/pkg/rpc"
)

// Compile-time checks to ensure Client implements the pkgrpc interfaces.
var (
	_ pkgrpc.SubstrateClient = (*Client)(nil)
	_ pkgrpc.ErrorNotifier   = (*Client)(nil)
)

const healthCheckTimeout = 5 * time.Second

// Client talks JSON-RPC to a Substrate node over WebSocket and decodes
// System.Events with the runtime metadata of each block's spec version.
// It implements the pkgrpc.SubstrateClient and pkgrpc.ErrorNotifier interfaces.
type Client struct {
	rpc *rpc.Client
	log *logger.Logger

	mu         sync.Mutex
	catalogs   map[uint32]*eventCatalog
	ss58Format *uint16

	errs      chan error
	stop      context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewClient dials endpoint, retrying transient failures per cfg.Retry,
// and starts the health probe when cfg.HealthCheckInterval is set.
func NewClient(ctx context.Context, endpoint string, cfg config.ChainConfig, log *logger.Logger) (*Client, error) {
	if err := config.ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	var rpcClient *rpc.Client
	err := retryWithBackoff(ctx, cfg.Retry, "dial", func() error {
		var dialErr error
		rpcClient, dialErr = rpc.DialContext(ctx, endpoint)
		return dialErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	log.Debugw("connected to substrate node", "endpoint", endpoint)

	return newClient(rpcClient, cfg.HealthCheckInterval.Duration, log), nil
}

func newClient(rpcClient *rpc.Client, healthInterval time.Duration, log *logger.Logger) *Client {
	probeCtx, stop := context.WithCancel(context.Background())

	c := &Client{
		rpc:      rpcClient,
		log:      log,
		catalogs: make(map[uint32]*eventCatalog),
		errs:     make(chan error, 1),
		stop:     stop,
	}

	if healthInterval > 0 {
		c.wg.Add(1)
		go c.healthProbe(probeCtx, healthInterval)
	}

	return c
}

// Close stops the health probe and closes the RPC client connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.stop()
		c.wg.Wait()
		c.rpc.Close()
	})
}

// Errors returns a channel that receives connection failures detected by the health probe.
func (c *Client) Errors() <-chan error {
	return c.errs
}

// GetCurrentHead returns the number of the latest block header.
func (c *Client) GetCurrentHead(ctx context.Context) (uint64, error) {
	var header struct {
		Number string `json:"number"`
	}

	if err := c.call(ctx, &header, "chain_getHeader"); err != nil {
		return 0, err
	}

	head, err := common.ParseUint64orHex(&header.Number)
	if err != nil {
		return 0, fmt.Errorf("chain_getHeader: invalid block number %q: %w", header.Number, err)
	}

	return head, nil
}

// GetBlockHash returns the hash of the block at blockNum.
func (c *Client) GetBlockHash(ctx context.Context, blockNum uint64) (pkgrpc.BlockHash, error) {
	var hash *string

	if err := c.call(ctx, &hash, "chain_getBlockHash", blockNum); err != nil {
		return "", err
	}

	if hash == nil || *hash == "" {
		RPCMethodError("chain_getBlockHash", errorType(ErrBlockNotFound))
		return "", fmt.Errorf("block %d: %w", blockNum, ErrBlockNotFound)
	}

	return pkgrpc.BlockHash(*hash), nil
}

// GetEventsAt returns the decoded events of the block with the given hash.
func (c *Client) GetEventsAt(ctx context.Context, hash pkgrpc.BlockHash) ([]pkgrpc.RawEvent, error) {
	catalog, err := c.catalogAt(ctx, hash)
	if err != nil {
		return nil, err
	}

	var raw *string
	if err := c.call(ctx, &raw, "state_getStorage", catalog.storageKey, string(hash)); err != nil {
		return nil, err
	}

	if raw == nil || *raw == "" || *raw == "0x" {
		return []pkgrpc.RawEvent{}, nil
	}

	bz, err := codec.HexDecodeString(*raw)
	if err != nil {
		return nil, fmt.Errorf("decode events storage at %s: %w", hash, err)
	}

	storage := types.StorageDataRaw(bz)

	parsed, err := parser.NewEventParser().ParseEvents(catalog.registry, &storage)
	if err != nil {
		return nil, &MetadataError{SpecVersion: catalog.specVersion, Reason: "parse events at " + string(hash), Err: err}
	}

	events := make([]pkgrpc.RawEvent, 0, len(parsed))
	if len(parsed) == 0 {
		return events, nil
	}

	format := c.addressFormat(ctx)
	for _, ev := range parsed {
		events = append(events, toRawEvent(catalog.describe(ev.EventID, ev.Name), ev, format))
	}

	return events, nil
}

func toRawEvent(d eventDescriptor, ev *parser.Event, ss58Format uint16) pkgrpc.RawEvent {
	out := pkgrpc.RawEvent{
		Section: d.Module,
		Method:  d.Name,
		Data:    make([]any, 0, len(ev.Fields)),
		Types:   make([]string, 0, len(ev.Fields)),
		Args:    make([]string, 0, len(ev.Fields)),
		Docs:    d.Docs,
	}

	for i, field := range ev.Fields {
		var value any
		name := ""
		if field != nil {
			value = field.Value
			name = field.Name
		}

		typ := unknownType
		if i < len(d.ArgTypes) {
			typ = d.ArgTypes[i]
		}
		if i < len(d.ArgNames) {
			name = d.ArgNames[i]
		}
		if name == "" {
			name = typ
		}

		_, account := accountTypes[typ]

		out.Data = append(out.Data, displayValue{value: value, account: account, ss58Format: ss58Format})
		out.Types = append(out.Types, typ)
		out.Args = append(out.Args, name)
	}

	return out
}

// catalogAt returns the event catalog for the runtime active at hash,
// downloading metadata once per spec version.
func (c *Client) catalogAt(ctx context.Context, hash pkgrpc.BlockHash) (*eventCatalog, error) {
	var version struct {
		SpecVersion uint32 `json:"specVersion"`
	}

	if err := c.call(ctx, &version, "state_getRuntimeVersion", string(hash)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if catalog, ok := c.catalogs[version.SpecVersion]; ok {
		return catalog, nil
	}

	var metaHex string
	if err := c.call(ctx, &metaHex, "state_getMetadata", string(hash)); err != nil {
		return nil, err
	}

	var meta types.Metadata
	if err := codec.DecodeFromHex(metaHex, &meta); err != nil {
		return nil, &MetadataError{SpecVersion: version.SpecVersion, Reason: "decode metadata", Err: err}
	}

	catalog, err := newEventCatalog(version.SpecVersion, &meta)
	if err != nil {
		return nil, err
	}

	MetadataLoads.Inc()
	c.log.Infow("loaded runtime metadata",
		"spec_version", version.SpecVersion,
		"events", len(catalog.events),
	)

	c.catalogs[version.SpecVersion] = catalog

	return catalog, nil
}

// addressFormat returns the SS58 prefix reported by system_properties. Nodes that
// do not report one, or fail to answer, get the generic prefix; only answers are cached.
func (c *Client) addressFormat(ctx context.Context) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ss58Format != nil {
		return *c.ss58Format
	}

	var props struct {
		SS58Format *uint16 `json:"ss58Format"`
	}

	if err := c.call(ctx, &props, "system_properties"); err != nil {
		c.log.Warnw("failed to read chain properties, using generic address format", "error", err)
		return genericSS58Format
	}

	format := genericSS58Format
	if props.SS58Format != nil {
		format = *props.SS58Format
	}
	c.ss58Format = &format

	return format
}

// call performs a single JSON-RPC call and records its metrics. Calls are never retried.
func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	start := time.Now()
	RPCMethodInc(method)

	err := c.rpc.CallContext(ctx, result, method, args...)
	RPCMethodDuration(method, time.Since(start))

	if err != nil {
		RPCMethodError(method, errorType(err))
		return fmt.Errorf("%s: %w", method, err)
	}

	return nil
}
