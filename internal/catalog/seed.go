package catalog

// seedNodes is the default data flow of a mobile app backend.
var seedNodes = []Node{
	{ID: "client", Label: "Mobile App", Description: "User's Mobile App"},
	{ID: "api", Label: "API Gateway", Description: "Ingress and routing"},
	{ID: "service", Label: "Service", Description: "Business logic"},
	{ID: "db", Label: "Database", Description: "Data at rest"},
	{ID: "logs", Label: "Logs", Description: "Telemetry & audit"},
	{ID: "third", Label: "3rd Party", Description: "External dependency"},
}

// seedCategories maps the WADDLE letters onto STRIDE.
var seedCategories = []Category{
	{Code: "W", Name: "Wrong Identity", Stride: "Spoofing", ColorTag: "fuchsia"},
	{Code: "A", Name: "Alteration", Stride: "Tampering", ColorTag: "amber"},
	{Code: "D1", Name: "Disruption", Stride: "Denial of Service", ColorTag: "red"},
	{Code: "D2", Name: "Denial", Stride: "Repudiation", ColorTag: "orange"},
	{Code: "L", Name: "Leakage of Information", Stride: "Information Disclosure", ColorTag: "blue"},
	{Code: "E", Name: "Elevation of Privilege", Stride: "Elevation of Privilege", ColorTag: "emerald"},
}

var seedThreats = []Threat{
	{
		ID:           "w-phishing",
		CategoryCode: "W",
		NodeIDs:      []string{"client", "api"},
		Prompt:       "Attacker steals session cookie and replays it to impersonate a user.",
		Mitigation:   "Bind sessions to device + rotate on risk (e.g., token binding, short TTL)",
		Distractors: []string{
			"Increase log retention to 2 years",
			"Disable 2FA to reduce friction",
			"Use a bigger instance size",
		},
		Hint: "Make stolen tokens useless elsewhere or after reuse.",
	},
	{
		ID:           "a-tamper",
		CategoryCode: "A",
		NodeIDs:      []string{"client", "api", "service"},
		Prompt:       "JSON payload modified in transit to change accountId.",
		Mitigation:   "Use TLS + server-side integrity checks (sign/verify critical fields)",
		Distractors: []string{
			"Rely on client-side validation",
			"More verbose logging only",
			"Add a loading spinner",
		},
		Hint: "Integrity/authenticity of fields is key.",
	},
	{
		ID:           "d1-dos",
		CategoryCode: "D1",
		NodeIDs:      []string{"api", "service"},
		Prompt:       "Botnet floods login endpoint causing resource exhaustion.",
		Mitigation:   "Rate limiting + exponential backoff + upstream WAF/captcha on anomalies",
		Distractors: []string{
			"Store passwords in plaintext for speed",
			"Turn off logs",
			"Use client-side hashing only",
		},
		Hint: "Protect capacity at the edge and slow down abuse.",
	},
	{
		ID:           "d2-repudiation",
		CategoryCode: "D2",
		NodeIDs:      []string{"service", "logs"},
		Prompt:       "User denies making a funds transfer; audit trail is incomplete.",
		Mitigation:   "Create tamper-evident audit logs with user/time/action + request signature",
		Distractors: []string{
			"Delete old logs to save space",
			"Allow shared accounts",
			"Cache everything",
		},
		Hint: "Tie action to actor with verifiable evidence.",
	},
	{
		ID:           "l-info",
		CategoryCode: "L",
		NodeIDs:      []string{"db", "logs", "third"},
		Prompt:       "PII appears in logs from error stack traces.",
		Mitigation:   "Redact PII at source + structured logging + data retention policy",
		Distractors: []string{
			"Email logs to the team",
			"Use HTTP instead of HTTPS",
			"Return full stack traces to clients",
		},
		Hint: "Collect only what's needed; redact early.",
	},
	{
		ID:           "e-admin",
		CategoryCode: "E",
		NodeIDs:      []string{"service", "db"},
		Prompt:       "Normal user calls admin-only endpoint via crafted request.",
		Mitigation:   "Enforce server-side authorization (ABAC/RBAC) + deny-by-default",
		Distractors: []string{
			"Hide the admin button in the UI",
			"Rely on HTTP referer",
			"Only check JWT 'role' on the client",
		},
		Hint: "AuthN says who; AuthZ says what they can do.",
	},
}
