package common

const (
	ComponentScanner     = "scanner"
	ComponentRPC         = "rpc"
	ComponentExport      = "export"
	ComponentSession     = "session"
	ComponentScanStore   = "scan-store"
	ComponentMaintenance = "maintenance"
	ComponentAPI         = "api"
)

var AllComponents = map[string]struct{}{
	ComponentScanner:     {},
	ComponentRPC:         {},
	ComponentExport:      {},
	ComponentSession:     {},
	ComponentScanStore:   {},
	ComponentMaintenance: {},
	ComponentAPI:         {},
}
