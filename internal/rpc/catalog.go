package rpc

import (
	"strconv"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

const (
	metadataV14 = 14

	unknownType = "Unknown"
)

// eventDescriptor is what runtime metadata says about one event variant.
type eventDescriptor struct {
	Module   string
	Name     string
	Docs     []string
	ArgNames []string
	ArgTypes []string
}

// eventCatalog holds everything needed to decode System.Events for one runtime version.
type eventCatalog struct {
	specVersion uint32
	registry    registry.EventRegistry
	storageKey  string
	events      map[types.EventID]eventDescriptor
}

func newEventCatalog(specVersion uint32, meta *types.Metadata) (*eventCatalog, error) {
	if meta.Version != metadataV14 {
		return nil, &MetadataError{
			SpecVersion: specVersion,
			Reason:      "unsupported metadata version " + strconv.Itoa(int(meta.Version)),
		}
	}

	key, err := types.CreateStorageKey(meta, "System", "Events")
	if err != nil {
		return nil, &MetadataError{SpecVersion: specVersion, Reason: "create System.Events storage key", Err: err}
	}

	eventRegistry, err := registry.NewFactory().CreateEventRegistry(meta)
	if err != nil {
		return nil, &MetadataError{SpecVersion: specVersion, Reason: "create event registry", Err: err}
	}

	return &eventCatalog{
		specVersion: specVersion,
		registry:    eventRegistry,
		storageKey:  codec.HexEncodeToString(key),
		events:      describeEvents(&meta.AsMetadataV14),
	}, nil
}

// describe returns the descriptor for id, falling back to the registry name
// ("Pallet.Event") when metadata has no entry for it.
func (c *eventCatalog) describe(id types.EventID, registryName string) eventDescriptor {
	if d, ok := c.events[id]; ok {
		return d
	}

	module, name, found := strings.Cut(registryName, ".")
	if !found {
		return eventDescriptor{Module: unknownType, Name: registryName}
	}

	return eventDescriptor{Module: module, Name: name}
}

// describeEvents walks every pallet's event enum and records names, docs and
// argument labels keyed by the on-chain event index.
func describeEvents(meta *types.MetadataV14) map[types.EventID]eventDescriptor {
	lookup := make(map[int64]*types.Si1Type, len(meta.Lookup.Types))
	for i := range meta.Lookup.Types {
		portable := &meta.Lookup.Types[i]
		lookup[portable.ID.Int64()] = &portable.Type
	}

	descriptors := make(map[types.EventID]eventDescriptor)

	for _, pallet := range meta.Pallets {
		if !pallet.HasEvents {
			continue
		}

		eventEnum, ok := lookup[pallet.Events.Type.Int64()]
		if !ok || !eventEnum.Def.IsVariant {
			continue
		}

		for _, variant := range eventEnum.Def.Variant.Variants {
			d := eventDescriptor{
				Module:   string(pallet.Name),
				Name:     string(variant.Name),
				Docs:     make([]string, 0, len(variant.Docs)),
				ArgNames: make([]string, 0, len(variant.Fields)),
				ArgTypes: make([]string, 0, len(variant.Fields)),
			}

			for _, doc := range variant.Docs {
				d.Docs = append(d.Docs, string(doc))
			}

			for _, field := range variant.Fields {
				label := typeLabel(field, lookup)
				name := string(field.Name)
				if !field.HasName || name == "" {
					name = label
				}

				d.ArgNames = append(d.ArgNames, name)
				d.ArgTypes = append(d.ArgTypes, label)
			}

			descriptors[types.EventID{byte(pallet.Index), byte(variant.Index)}] = d
		}
	}

	return descriptors
}

// typeLabel returns the short declared type of field, e.g. "AccountId" for "T::AccountId".
func typeLabel(field types.Si1Field, lookup map[int64]*types.Si1Type) string {
	if field.HasTypeName {
		if label := cleanTypeName(string(field.TypeName)); label != "" {
			return label
		}
	}

	t, ok := lookup[field.Type.Int64()]
	if !ok {
		return unknownType
	}

	if n := len(t.Path); n > 0 {
		return string(t.Path[n-1])
	}

	switch {
	case t.Def.IsCompact:
		return "Compact"
	case t.Def.IsSequence:
		return "Vec"
	case t.Def.IsArray:
		return "Array"
	case t.Def.IsTuple:
		return "Tuple"
	case t.Def.IsPrimitive:
		return "Primitive"
	case t.Def.IsBitSequence:
		return "BitVec"
	default:
		return unknownType
	}
}

// cleanTypeName strips trait qualifiers: "T::Balance" and
// "<T as frame_system::Config>::AccountId" become "Balance" and "AccountId".
func cleanTypeName(name string) string {
	name = strings.TrimSpace(name)

	if strings.HasPrefix(name, "<") {
		if idx := strings.LastIndex(name, ">::"); idx >= 0 {
			name = name[idx+len(">::"):]
		}
	}

	return strings.TrimPrefix(name, "T::")
}
