package catalog

import "slices"

var codeTemplates = []CodeTemplate{
	{
		ID:    "hello-worker",
		Title: "Hello Worker",
		Stack: []string{"Workers", "TypeScript"},
		CodeSnippet: `export default {
  async fetch(request: Request): Promise<Response> {
    return new Response("Hello from the edge!");
  },
};`,
	},
	{
		ID:    "d1-query",
		Title: "D1 Query API",
		Stack: []string{"Workers", "D1"},
		CodeSnippet: `export default {
  async fetch(request: Request, env: Env): Promise<Response> {
    const { results } = await env.DB.prepare(
      "SELECT * FROM users WHERE id = ?"
    ).bind(1).all();
    return Response.json(results);
  },
};`,
	},
	{
		ID:    "kv-cache",
		Title: "KV Read-Through Cache",
		Stack: []string{"Workers", "KV"},
		CodeSnippet: `export default {
  async fetch(request: Request, env: Env): Promise<Response> {
    const key = new URL(request.url).pathname;
    let body = await env.CACHE.get(key);
    if (body === null) {
      body = await (await fetch(request)).text();
      await env.CACHE.put(key, body, { expirationTtl: 300 });
    }
    return new Response(body);
  },
};`,
	},
	{
		ID:    "ai-chat",
		Title: "Workers AI Chat",
		Stack: []string{"Workers", "AI"},
		CodeSnippet: `export default {
  async fetch(request: Request, env: Env): Promise<Response> {
    const { prompt } = await request.json();
    const answer = await env.AI.run("@cf/meta/llama-3-8b-instruct", {
      messages: [{ role: "user", content: prompt }],
    });
    return Response.json(answer);
  },
};`,
	},
}

// CodeTemplates returns the built-in code templates.
func CodeTemplates() []CodeTemplate {
	return slices.Clone(codeTemplates)
}

// LookupTemplate returns the template with the given id.
func LookupTemplate(id string) (CodeTemplate, bool) {
	for _, t := range codeTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return CodeTemplate{}, false
}
