package rules

// defaultSet is the built-in configuration used when no rule file is
// provided. The group keywords and lexicons track the curated lists the
// dashboards were built around; a YAML rule file overrides all of it.
func defaultSet() *Set {
	return &Set{
		Groups: []GroupRule{
			{
				Label:    "Ransomware",
				Priority: 1,
				Keywords: []string{
					"ransomware", "ransom note", "double extortion", "locker",
					"ransom demand", "ransom gang", "extortion",
					"lockbit", "alphv", "blackcat", "clop", "cl0p", "conti",
					"ryuk", "maze", "egregor", "akira", "blackbyte",
					"ragnar locker", "darkside", "babuk", "hive",
					"black basta", "vice society", "bianlian", "play ransomware",
					"wizard spider", "scattered spider",
					"leak site", "ransom negotiation",
					"ransomware-as-a-service", "raas",
				},
			},
			{
				Label:    "Vulnerabilities / CVEs",
				Priority: 1,
				Keywords: []string{
					"cve-", "vulnerability", "vulnerabilities",
					"remote code execution", "rce", "privilege escalation",
					"buffer overflow", "out-of-bounds write", "sql injection",
					"authentication bypass", "zero-day", "0day",
				},
			},
			{
				Label:    "Exploit / PoC",
				Priority: 2,
				Keywords: []string{
					"exploit", "poc released", "proof-of-concept",
					"exploit code", "weaponized", "exploit available",
					"exploit toolkit", "exploit released",
				},
			},
			{
				Label:    "Windows / Microsoft",
				Priority: 3,
				Keywords: []string{
					"windows", "exchange server", "office 365", "msrc",
					"sharepoint", "outlook", "active directory", "adfs",
					"ntlm", "ms defender", "intune",
				},
			},
			{
				Label:    "Linux / Unix",
				Priority: 3,
				Keywords: []string{
					"linux", "ubuntu", "debian", "centos", "red hat", "rhel",
					"suse", "unix", "systemd", "kernel module",
				},
			},
			{
				Label:    "Cloud / SaaS",
				Priority: 2,
				Keywords: []string{
					"aws", "azure", "gcp", "google cloud", "cloudflare",
					"okta", "auth0", "saas", "s3 bucket",
					"cloud misconfiguration", "iam role", "cloudtrail",
					"kubernetes", "k8s",
				},
			},
			{
				Label:    "Threat Actors / APT",
				Priority: 1,
				Keywords: []string{
					"apt group", "lazarus", "sandworm", "fin7", "apt29",
					"apt28", "charming kitten", "oilrig", "turla",
					"cozy bear", "fancy bear", "muddled libra",
				},
				Patterns: []string{`\bapt[ -]?\d+\b`},
			},
			{
				Label:    "Malware / Payloads",
				Priority: 2,
				Keywords: []string{
					"malware", "trojan", "backdoor", "infostealer",
					"info-stealer", "stealer", "remote access trojan",
					"botnet", "loader", "dropper", "rootkit", "worm",
					"keylogger", "banking trojan",
				},
				Patterns: []string{`\brat\b`},
			},
			{
				Label:    "Data Breaches / Leaks",
				Priority: 1,
				Keywords: []string{
					"data breach", "data leak", "leaked data",
					"database leaked", "records exposed",
					"credentials leaked", "credential dump",
					"publicly exposed", "open database",
				},
			},
			{
				Label:    "Phishing / Social Engineering",
				Priority: 2,
				Keywords: []string{
					"phishing", "spear-phishing", "spear phishing",
					"social engineering", "credential harvesting",
					"smishing", "vishing", "impersonation",
					"brand impersonation",
				},
			},
			{
				Label:    "Vendor Security Intelligence",
				Priority: 4,
				Keywords: []string{
					"crowdstrike", "falcon", "sentinelone", "palo alto",
					"cortex xdr", "unit 42", "microsoft defender",
					"symantec", "trend micro", "cisco", "talos",
					"fortinet", "fortigate", "fortios", "checkpoint",
					"juniper", "mandiant", "fireeye", "kaspersky",
					"securelist", "bitdefender", "eset", "secureworks",
					"sophos", "akamai", "fastly", "proofpoint", "mimecast",
					"vmware", "broadcom", "1password", "lastpass",
					"duo security",
				},
			},
			{
				Label:    "Supply Chain & Dependency Attacks",
				Priority: 1,
				Keywords: []string{
					"supply chain attack", "dependency hijack",
					"package compromise", "typosquatting", "npm package",
					"pypi", "malicious package", "software supply chain",
					"backdoored library",
				},
			},
			{
				Label:    "Crypto / Blockchain Security",
				Priority: 3,
				Keywords: []string{
					"crypto scam", "blockchain hack", "defi exploit",
					"smart contract vulnerability", "rug pull",
					"crypto theft", "exchange hacked", "web3",
					"metamask", "ledger",
				},
			},
			{
				Label:    "Cybercrime / Darknet",
				Priority: 3,
				Keywords: []string{
					"darknet", "dark web", "crime forum",
					"underground marketplace", "stealer logs",
					"initial access broker", "ransom gang leak site",
				},
			},
			{
				Label:    "DFIR / Incident Response",
				Priority: 3,
				Keywords: []string{
					"dfir", "forensic", "incident response",
					"memory analysis", "disk image", "timeline analysis",
					"ioc", "tactics techniques", "mitre att&ck",
				},
			},
		},

		Signals: []SignalRule{
			{
				Name: "zero-day-disclosure",
				Keywords: []string{
					"zero-day", "0-day", "0day", "zero day vulnerability",
				},
			},
			{
				Name: "active-exploitation",
				Keywords: []string{
					"actively exploited", "exploited in the wild",
					"under active exploitation", "mass exploitation",
					"exploitation observed",
				},
			},
			{
				Name: "ransomware-announcement",
				Keywords: []string{
					"ransomware attack", "ransomware gang", "ransom demand",
					"claims responsibility", "leak site", "double extortion",
				},
			},
			{
				Name: "supply-chain-compromise",
				Keywords: []string{
					"supply chain attack", "supply chain compromise",
					"backdoored library", "malicious package",
					"package compromise",
				},
			},
			{
				Name: "large-scale-attack",
				Keywords: []string{
					"millions of", "large-scale attack", "mass attack",
					"widespread campaign", "global campaign",
					"records exposed",
				},
			},
			{
				Name: "cloud-saas-breach",
				Keywords: []string{
					"cloud breach", "saas breach", "okta breach",
					"tenant compromise", "s3 bucket exposed",
				},
			},
		},

		Vendors: map[string][]string{
			"Microsoft":  {"microsoft", "windows", "exchange", "azure"},
			"Cisco":      {"cisco", "ios xe"},
			"Palo Alto":  {"palo alto", "pan-os"},
			"Fortinet":   {"fortinet", "fortigate"},
			"Cloudflare": {"cloudflare"},
			"Google":     {"google", "chrome", "android", "gmail"},
			"Apple":      {"apple", "macos", "ios", "ipados"},
			"VMware":     {"vmware", "esxi"},
			"Citrix":     {"citrix"},
			"Progress":   {"progress", "moveit"},
			"Atlassian":  {"atlassian", "jira", "confluence"},
		},

		Actors: []string{
			"APT28", "APT29", "APT33", "APT37", "APT38", "APT41",
			"Akira", "Andariel", "BlackByte", "BlackTech", "Carbanak",
			"Charming Kitten", "Cozy Bear", "Daggerfly", "Dragonfly",
			"Earth Lusca", "Ember Bear", "Equation", "FIN6", "FIN7",
			"FIN8", "Fancy Bear", "Forest Blizzard", "Gamaredon Group",
			"HAFNIUM", "Kimsuky", "LAPSUS$", "Lace Tempest",
			"Lazarus Group", "Leviathan", "Midnight Blizzard",
			"MuddyWater", "Mustang Panda", "OilRig", "Octo Tempest",
			"Salt Typhoon", "Sandworm Team", "Scattered Spider",
			"Seashell Blizzard", "Secret Blizzard", "Silk Typhoon",
			"Star Blizzard", "TA505", "TeamTNT", "ToddyCat",
			"Transparent Tribe", "Turla", "Volt Typhoon",
			"Winter Vivern", "Wizard Spider",
		},

		ActorPatterns: []string{
			`\bAPT[ -]?\d+\b`,
			`\bAPT-C-\d+\b`,
			`\bTA\d{3,}\b`,
			`\bUNC\d+\b`,
			`\bStorm-\d+\b`,
			`\bFIN\d+\b`,
			`\bThreat Group-\d+\b`,
		},

		Stopwords: []string{
			"the", "and", "for", "with", "from", "this", "that", "have",
			"has", "into", "over", "under", "about", "your", "you", "are",
			"was", "were", "will", "their", "they", "them", "its", "our",
			"out", "but", "not", "can", "could", "would", "should", "may",
			"might", "than", "then", "after", "before", "more", "less",
			"also", "just", "via", "security", "cyber", "attack",
			"attacks", "threat", "threats", "vulnerability",
			"vulnerabilities", "report", "reports", "new", "zero", "day",
			"days", "research", "team", "blog", "post",
		},

		TrendingTerms: map[string]string{
			"ransomware":          "Ransomware",
			"double extortion":    "Double extortion",
			"supply chain":        "Supply chain",
			"0-day":               "0-day",
			"zero-day":            "Zero-day",
			"data breach":         "Data breach",
			"initial access":      "Initial access",
			"phishing":            "Phishing",
			"credential stuffing": "Credential stuffing",
		},
	}
}
