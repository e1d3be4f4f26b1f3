package rest

// consoleHTML is the interactive query console served at /graphiql. It has
// no contract of its own beyond posting query documents to /graphql.
const consoleHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Recipedex Console</title>
  <style>
    body { font-family: monospace; margin: 2rem; background: #fafafa; }
    textarea { width: 100%; height: 10rem; font-family: inherit; font-size: 14px; }
    pre { background: #1e1e1e; color: #d4d4d4; padding: 1rem; overflow: auto; min-height: 10rem; }
    button { padding: 0.5rem 1.5rem; margin: 0.5rem 0; }
  </style>
</head>
<body>
  <h1>Recipedex Console</h1>
  <p>Supported queries: <code>{ apiVersion }</code>, <code>{ recipes { ... } }</code>, <code>{ recipe(title: "...") { ... } }</code></p>
  <textarea id="query">{ recipes { title ingredients { name qty } instructions tags media { anchor url } } }</textarea>
  <br>
  <button onclick="run()">Run</button>
  <pre id="result">Press Run to execute the query.</pre>
  <script>
    async function run() {
      const query = document.getElementById('query').value;
      const result = document.getElementById('result');
      try {
        const resp = await fetch('/graphql', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ query })
        });
        result.textContent = JSON.stringify(await resp.json(), null, 2);
      } catch (err) {
        result.textContent = String(err);
      }
    }
  </script>
</body>
</html>
`
