package catalog

import (
	"slices"
	"strings"
)

var troubleshooting = map[TroubleArea][]Solution{
	AreaConnectivity: {
		{Symptom: "521 Web Server Is Down", Cause: "Origin unreachable via TLS/SSL.", Fix: "Check origin port 443 availability."},
		{Symptom: "1001 DNS Resolution", Cause: "CNAME flattening mismatch.", Fix: "Verify DNS records match dashboard settings."},
	},
	AreaCompute: {
		{Symptom: "1101 Worker Exception", Cause: "Runtime crash in V8 isolate.", Fix: "Use wrangler tail to capture uncaught errors."},
		{Symptom: "1015 Rate Limited", Cause: "Free quota (100k/day) exhausted.", Fix: "Monitor usage in the analytics dashboard."},
	},
	AreaStorage: {
		{Symptom: "D1 Storage Limit", Cause: "Database reached 500MB cap.", Fix: "Run VACUUM or purge legacy table rows."},
		{Symptom: "KV Consistency Lag", Cause: "Global propagation delay.", Fix: "Move read-after-write paths to Durable Objects."},
	},
}

// Troubleshooting returns the guides for one area. Unknown areas return nil.
func Troubleshooting(area TroubleArea) []Solution {
	return slices.Clone(troubleshooting[area])
}

// ParseTroubleArea matches an area name case-insensitively.
func ParseTroubleArea(s string) (TroubleArea, bool) {
	for _, a := range AllTroubleAreas() {
		if strings.EqualFold(string(a), s) {
			return a, true
		}
	}
	return "", false
}
