// Package api exposes block range scans over HTTP.
// @title SubstrateScanner API
// @version 1.0
// @description REST API for scanning Substrate block ranges and browsing the collected events
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/SubstrateScanner
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
