package rpc

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	pkgrpc "github.com/goran-ethernal/SubstrateScanner/pkg/rpc"
	"github.com/stretchr/testify/require"
)

const (
	testSpecVersion = 1_002_000
	testBlockHash   = "0x6c9d2d4fbf1b7c2e5a0cba4ef63e5d2f9a0c4f1e2d3c4b5a69788796a5b4c3d2"
	eventsKey       = "0x26aa394eea5630e07c48ae0c9558cef780d41e5e16056765bc8461851072c9d7"
)

// TestClientImplementsInterface verifies that Client implements the pkgrpc interfaces.
func TestClientImplementsInterface(t *testing.T) {
	var _ pkgrpc.SubstrateClient = (*Client)(nil)
	var _ pkgrpc.ErrorNotifier = (*Client)(nil)
}

type fakeChain struct {
	head   string
	hashes map[uint64]string
}

func (f *fakeChain) GetHeader() (map[string]any, error) {
	return map[string]any{"number": f.head, "parentHash": "0x00"}, nil
}

func (f *fakeChain) GetBlockHash(blockNum uint64) (*string, error) {
	hash, ok := f.hashes[blockNum]
	if !ok {
		return nil, nil
	}
	return &hash, nil
}

type fakeState struct {
	specVersion   uint32
	storage       *string
	metadata      string
	metadataCalls atomic.Int32
}

func (f *fakeState) GetRuntimeVersion(hash string) (map[string]any, error) {
	return map[string]any{"specName": "polkadot", "specVersion": f.specVersion}, nil
}

func (f *fakeState) GetMetadata(hash string) (string, error) {
	f.metadataCalls.Add(1)
	return f.metadata, nil
}

func (f *fakeState) GetStorage(key, hash string) (*string, error) {
	if key != eventsKey {
		return nil, fmt.Errorf("unexpected storage key %s", key)
	}
	return f.storage, nil
}

type fakeSystem struct {
	down            atomic.Bool
	noProperties    atomic.Bool
	propertiesCalls atomic.Int32
}

func (f *fakeSystem) Properties() (map[string]any, error) {
	f.propertiesCalls.Add(1)
	if f.noProperties.Load() {
		return map[string]any{}, nil
	}
	return map[string]any{"ss58Format": 0, "tokenDecimals": 10, "tokenSymbol": "DOT"}, nil
}

func (f *fakeSystem) Health() (map[string]any, error) {
	if f.down.Load() {
		return nil, errors.New("node is shutting down")
	}
	return map[string]any{"peers": 12, "isSyncing": false, "shouldHavePeers": true}, nil
}

type testNode struct {
	chain  *fakeChain
	state  *fakeState
	system *fakeSystem
}

func newTestNode(t *testing.T, healthInterval time.Duration) (*Client, *testNode) {
	t.Helper()

	node := &testNode{
		chain: &fakeChain{
			head:   "0x1a2b3c",
			hashes: map[uint64]string{100: testBlockHash},
		},
		state:  &fakeState{specVersion: testSpecVersion},
		system: &fakeSystem{},
	}

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("chain", node.chain))
	require.NoError(t, server.RegisterName("state", node.state))
	require.NoError(t, server.RegisterName("system", node.system))
	t.Cleanup(server.Stop)

	client := newClient(rpc.DialInProc(server), healthInterval, logger.NewNopLogger())
	t.Cleanup(client.Close)

	return client, node
}

// seedCatalog installs a catalog knowing a single field-less System.CodeUpdated event (0x0003).
func seedCatalog(c *Client) {
	id := types.EventID{0, 3}

	c.catalogs[testSpecVersion] = &eventCatalog{
		specVersion: testSpecVersion,
		storageKey:  eventsKey,
		registry: registry.EventRegistry{
			id: &registry.Type{Name: "System.CodeUpdated"},
		},
		events: map[types.EventID]eventDescriptor{
			id: {
				Module:   "System",
				Name:     "CodeUpdated",
				Docs:     []string{"`:code` was updated."},
				ArgNames: []string{},
				ArgTypes: []string{},
			},
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func TestClient_GetCurrentHead(t *testing.T) {
	client, node := newTestNode(t, 0)

	head, err := client.GetCurrentHead(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(0x1a2b3c), head)

	node.chain.head = "not-a-number"
	_, err = client.GetCurrentHead(context.Background())
	require.ErrorContains(t, err, "invalid block number")
}

func TestClient_GetBlockHash(t *testing.T) {
	client, _ := newTestNode(t, 0)

	hash, err := client.GetBlockHash(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, pkgrpc.BlockHash(testBlockHash), hash)

	_, err = client.GetBlockHash(context.Background(), 101)
	require.ErrorIs(t, err, ErrBlockNotFound)
}

func TestClient_GetEventsAt(t *testing.T) {
	t.Run("no events stored", func(t *testing.T) {
		client, node := newTestNode(t, 0)
		seedCatalog(client)

		events, err := client.GetEventsAt(context.Background(), testBlockHash)
		require.NoError(t, err)
		require.Empty(t, events)
		require.Zero(t, node.state.metadataCalls.Load())
	})

	t.Run("decodes field-less event", func(t *testing.T) {
		client, node := newTestNode(t, 0)
		seedCatalog(client)

		// one record: Finalization phase, event 0x0003, no topics
		node.state.storage = strPtr("0x0401000300")

		events, err := client.GetEventsAt(context.Background(), testBlockHash)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, "System", events[0].Section)
		require.Equal(t, "CodeUpdated", events[0].Method)
		require.Equal(t, []string{"`:code` was updated."}, events[0].Docs)
		require.Empty(t, events[0].Data)
		require.Empty(t, events[0].Types)
		require.Empty(t, events[0].Args)
		require.Equal(t, int32(1), node.system.propertiesCalls.Load())
	})

	t.Run("undecodable metadata", func(t *testing.T) {
		client, node := newTestNode(t, 0)
		node.state.metadata = "0xzz"

		_, err := client.GetEventsAt(context.Background(), testBlockHash)

		var metaErr *MetadataError
		require.ErrorAs(t, err, &metaErr)
		require.Equal(t, uint32(testSpecVersion), metaErr.SpecVersion)
		require.Equal(t, int32(1), node.state.metadataCalls.Load())
	})
}

func TestClient_AddressFormat(t *testing.T) {
	t.Run("reported by node and cached", func(t *testing.T) {
		client, node := newTestNode(t, 0)

		require.Equal(t, uint16(0), client.addressFormat(context.Background()))
		require.Equal(t, uint16(0), client.addressFormat(context.Background()))
		require.Equal(t, int32(1), node.system.propertiesCalls.Load())
	})

	t.Run("generic prefix when not reported", func(t *testing.T) {
		client, node := newTestNode(t, 0)
		node.system.noProperties.Store(true)

		require.Equal(t, genericSS58Format, client.addressFormat(context.Background()))
	})
}

func TestClient_HealthProbe(t *testing.T) {
	client, node := newTestNode(t, 10*time.Millisecond)

	select {
	case err := <-client.Errors():
		t.Fatalf("unexpected health error: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	node.system.down.Store(true)

	select {
	case err := <-client.Errors():
		require.ErrorContains(t, err, "connection lost")
		require.ErrorContains(t, err, "node is shutting down")
	case <-time.After(2 * time.Second):
		t.Fatal("expected health probe to report a failure")
	}
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	client, _ := newTestNode(t, 10*time.Millisecond)

	client.Close()
	client.Close()

	_, err := client.GetCurrentHead(context.Background())
	require.Error(t, err)
}

func TestNewClient_RejectsNonWebSocketEndpoint(t *testing.T) {
	_, err := NewClient(context.Background(), "https://rpc.polkadot.io", config.ChainConfig{}, logger.NewNopLogger())
	require.ErrorContains(t, err, "must use ws:// or wss://")
}
