package catalog

const brandOrange = "#F38020"

var seedTopics = []Topic{
	{
		ID:          "pages",
		Title:       "Cloudflare Pages",
		Description: "Blazing fast static site hosting with built-in CI/CD.",
		Icon:        IconLayers,
		Color:       brandOrange,
		Category:    CategoryCompute,
		Overview:    "Pages is a JAMstack platform for frontend developers to collaborate and deploy websites. The free tier offers unlimited sites and bandwidth.",
		Limits: []string{
			"500 monthly builds",
			"100 custom domains per project",
			"Unlimited requests & bandwidth",
			"25 MiB max file size",
			"1 concurrent build",
		},
		SetupSteps: []string{
			"Connect your Git provider (GitHub/GitLab).",
			"Select your repository.",
			"Configure build settings (npm run build, dist folder).",
			"wrangler pages deploy dist",
		},
		Specs: map[string]string{
			"Build image":  "Ubuntu 22.04",
			"Preview URLs": "Per branch and per commit",
			"Functions":    "Backed by Workers",
		},
		Related: []string{"workers", "kv"},
		BestPractices: []string{
			"Use preview deployments for every pull request.",
			"Keep build output under the 20 000 file limit.",
		},
		CommonErrors: []CommonError{
			{Code: "BUILD_TIMEOUT", Message: "Build exceeded 20 minutes.", Fix: "Cache dependencies and trim the build step."},
		},
	},
	{
		ID:          "workers",
		Title:       "Workers OS",
		Description: "Deploy serverless code instantly across the globe.",
		Icon:        IconCPU,
		Color:       brandOrange,
		Category:    CategoryCompute,
		Overview:    "Workers run JavaScript, Rust and C++ on the edge network. V8 isolates give near-zero cold starts.",
		Limits: []string{
			"100,000 daily requests",
			"10ms CPU time per request",
			"1GB KV storage (Read-only)",
			"30 scripts maximum",
			"Standard subdomains (*.workers.dev)",
		},
		SetupSteps: []string{
			"npm install -g wrangler",
			"wrangler init my-worker",
			"Develop in index.ts",
			"wrangler deploy",
		},
		Specs: map[string]string{
			"Runtime":     "V8 isolates",
			"Memory":      "128 MB per isolate",
			"Subrequests": "50 per request",
		},
		Related: []string{"kv", "d1", "durable-objects", "ai"},
		BestPractices: []string{
			"Stream responses instead of buffering large bodies.",
			"Move shared state to KV, D1 or Durable Objects.",
		},
		CommonErrors: []CommonError{
			{Code: "1101", Message: "Worker threw an exception.", Fix: "Run wrangler tail to capture the uncaught error."},
			{Code: "1102", Message: "Worker exceeded the CPU limit.", Fix: "Profile hot paths and offload heavy work to Queues."},
		},
	},
	{
		ID:          "ai",
		Title:       "Workers AI",
		Description: "Run machine learning models on the edge.",
		Icon:        IconBrain,
		Color:       brandOrange,
		Category:    CategoryAI,
		Overview:    "Workers AI runs models such as Llama, Mistral and Whisper directly on the global GPU network.",
		Limits: []string{
			"10,000 neurons per day",
			"Varying neuron costs per model",
			"Access to Llama 3, Mistral, Whisper",
			"Limit on max input tokens",
		},
		SetupSteps: []string{
			"Create a Worker project.",
			"Add an AI binding to wrangler.toml.",
			"Use env.AI.run(model, input).",
			"wrangler deploy",
		},
		Related: []string{"workers", "vectorize"},
		BestPractices: []string{
			"Pick the smallest model that answers well; neuron cost scales with size.",
		},
		CommonErrors: []CommonError{
			{Code: "3036", Message: "Daily neuron allocation exhausted.", Fix: "Wait for the daily reset or move to a paid plan."},
		},
	},
	{
		ID:          "d1",
		Title:       "D1 Database",
		Description: "Serverless SQL database built on SQLite.",
		Icon:        IconDatabase,
		Color:       brandOrange,
		Category:    CategoryStorage,
		Overview:    "D1 is the native serverless SQL database. It supports data-rich applications without managing a database server.",
		Limits: []string{
			"500MB storage per database",
			"5 million rows read per day",
			"100k rows written per day",
			"10 databases per account",
		},
		SetupSteps: []string{
			"wrangler d1 create my-db",
			"Bind the database in wrangler.toml.",
			"Define schemas in SQL files.",
			"wrangler d1 execute my-db --file=schema.sql",
		},
		Specs: map[string]string{
			"Engine":      "SQLite",
			"Time travel": "7 days",
		},
		Related: []string{"workers", "kv"},
		CommonErrors: []CommonError{
			{Code: "D1_ERROR", Message: "Database reached the 500MB cap.", Fix: "Purge old rows or split data across databases."},
		},
	},
	{
		ID:          "kv",
		Title:       "Workers KV",
		Description: "Global, low-latency key-value storage.",
		Icon:        IconKey,
		Color:       brandOrange,
		Category:    CategoryStorage,
		Overview:    "KV is an eventually consistent key-value store optimised for high read volumes.",
		Limits: []string{
			"100,000 reads per day",
			"1,000 writes per day",
			"1 GB total storage",
			"25 MiB max value size",
		},
		SetupSteps: []string{
			"wrangler kv namespace create CACHE",
			"Bind the namespace in wrangler.toml.",
			"Read with env.CACHE.get(key).",
		},
		Related: []string{"workers", "durable-objects"},
		BestPractices: []string{
			"Expect up to 60 seconds for writes to propagate globally.",
		},
	},
	{
		ID:          "r2",
		Title:       "R2 Storage",
		Description: "S3-compatible object storage with zero egress fees.",
		Icon:        IconBox,
		Color:       brandOrange,
		Category:    CategoryStorage,
		Overview:    "R2 stores large unstructured data with an S3-compatible API and no egress charges.",
		Limits: []string{
			"10 GB storage per month",
			"1 million Class A operations per month",
			"10 million Class B operations per month",
			"Free egress",
		},
		SetupSteps: []string{
			"wrangler r2 bucket create assets",
			"Bind the bucket in wrangler.toml.",
			"Upload with env.ASSETS.put(key, body).",
		},
		Related: []string{"workers", "images"},
	},
	{
		ID:          "durable-objects",
		Title:       "Durable Objects",
		Description: "Strongly consistent, stateful coordination at the edge.",
		Icon:        IconZap,
		Color:       brandOrange,
		Category:    CategoryCompute,
		Overview:    "Durable Objects give each object a single-threaded home with transactional storage, ideal for chat rooms and counters.",
		Limits: []string{
			"SQLite-backed objects on the free plan",
			"5 GB storage per account",
			"100,000 requests per day",
		},
		SetupSteps: []string{
			"Export a class from your Worker.",
			"Declare the binding and migration in wrangler.toml.",
			"wrangler deploy",
		},
		Related: []string{"workers", "queues"},
	},
	{
		ID:          "queues",
		Title:       "Queues",
		Description: "Guaranteed delivery messaging between Workers.",
		Icon:        IconInbox,
		Color:       brandOrange,
		Category:    CategoryCompute,
		Overview:    "Queues batch, retry and deliver messages so heavy work can leave the request path.",
		Limits: []string{
			"Included with Workers usage",
			"128 KB max message size",
			"Batches of up to 100 messages",
		},
		SetupSteps: []string{
			"wrangler queues create jobs",
			"Add producer and consumer bindings.",
			"Handle batches in the queue() handler.",
		},
		Related: []string{"workers", "durable-objects"},
	},
	{
		ID:          "vectorize",
		Title:       "Vectorize",
		Description: "Vector database for embeddings and semantic search.",
		Icon:        IconBrain,
		Color:       brandOrange,
		Category:    CategoryAI,
		Overview:    "Vectorize indexes embeddings produced by Workers AI for retrieval-augmented generation.",
		Limits: []string{
			"30 million queried dimensions per month",
			"5 million stored dimensions",
		},
		SetupSteps: []string{
			"wrangler vectorize create docs --dimensions=768 --metric=cosine",
			"Bind the index in wrangler.toml.",
		},
		Related: []string{"ai"},
	},
	{
		ID:          "dns",
		Title:       "DNS & CDN",
		Description: "Authoritative DNS with a global cache in front.",
		Icon:        IconGlobe,
		Color:       brandOrange,
		Category:    CategoryNetwork,
		Overview:    "Proxying a zone puts the CDN, TLS and DDoS protection in front of the origin at no cost.",
		Limits: []string{
			"Unlimited DNS queries",
			"Unmetered DDoS mitigation",
			"3 page rules",
		},
		SetupSteps: []string{
			"Add the site in the dashboard.",
			"Switch nameservers at the registrar.",
			"Enable the orange-cloud proxy on records.",
		},
		Related: []string{"tunnel"},
		CommonErrors: []CommonError{
			{Code: "1001", Message: "DNS resolution error.", Fix: "Check that the records match the dashboard settings."},
			{Code: "521", Message: "Web server is down.", Fix: "Verify the origin accepts connections on 443."},
		},
	},
	{
		ID:          "tunnel",
		Title:       "Cloudflare Tunnel",
		Description: "Expose local services without opening inbound ports.",
		Icon:        IconGitMerge,
		Color:       brandOrange,
		Category:    CategoryNetwork,
		Overview:    "cloudflared keeps an outbound connection to the edge, so origins stay hidden behind the network.",
		Limits: []string{
			"Free for unlimited tunnels",
			"Up to 1,000 tunnels per account",
		},
		SetupSteps: []string{
			"Install cloudflared.",
			"cloudflared tunnel create home",
			"Route a hostname to the tunnel.",
		},
		Related: []string{"dns", "access"},
	},
	{
		ID:          "turnstile",
		Title:       "Turnstile",
		Description: "Privacy-preserving CAPTCHA alternative.",
		Icon:        IconShield,
		Color:       brandOrange,
		Category:    CategorySecurity,
		Overview:    "Turnstile challenges bots without puzzles and verifies tokens server side.",
		Limits: []string{
			"Unlimited challenges",
			"20 widgets per account",
		},
		SetupSteps: []string{
			"Create a widget in the dashboard.",
			"Embed the script and the site key.",
			"Verify tokens with the siteverify endpoint.",
		},
		Related: []string{"workers"},
	},
	{
		ID:          "access",
		Title:       "Zero Trust Access",
		Description: "Identity-aware access for internal apps.",
		Icon:        IconLock,
		Color:       brandOrange,
		Category:    CategorySecurity,
		Overview:    "Access puts an identity check in front of applications, replacing VPNs for small teams.",
		Limits: []string{
			"Up to 50 users free",
			"24h log retention",
		},
		SetupSteps: []string{
			"Create a Zero Trust organisation.",
			"Add an identity provider.",
			"Protect an application with a policy.",
		},
		Related: []string{"tunnel"},
	},
	{
		ID:          "images",
		Title:       "Image Transformations",
		Description: "Resize and optimise images on the fly.",
		Icon:        IconImage,
		Color:       brandOrange,
		Category:    CategoryMedia,
		Overview:    "Transform images by URL with format negotiation and caching at the edge.",
		Limits: []string{
			"5,000 unique transformations per month",
		},
		SetupSteps: []string{
			"Enable transformations on the zone.",
			"Request /cdn-cgi/image/width=400/<path>.",
		},
		Related: []string{"r2"},
	},
	{
		ID:          "ci",
		Title:       "Workers Builds",
		Description: "Git-connected builds and deploys for Workers.",
		Icon:        IconGitMerge,
		Color:       brandOrange,
		Category:    CategoryDevOps,
		Overview:    "Workers Builds run wrangler deploy on every push and post preview URLs to pull requests.",
		Limits: []string{
			"3,000 build minutes per month",
			"1 concurrent build",
		},
		SetupSteps: []string{
			"Connect the repository in the dashboard.",
			"Set the deploy command.",
			"npm run build",
		},
		Related: []string{"workers", "pages"},
	},
}
