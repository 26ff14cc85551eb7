package gateway

const templates = `
{{- define "package" -}}
{
  "name": "api-gateway",
  "version": "0.1.0",
  "private": true,
  "main": "src/index.js",
  "scripts": {
    "start": "node src/index.js"
  },
  "dependencies": {
    "express": "^4.19.2",
    "express-rate-limit": "^7.2.0",
    "http-proxy-middleware": "^3.0.0",
    "jsonwebtoken": "^9.0.2"
  }
}
{{end}}

{{- define "index" -}}
const express = require('express');
const rateLimit = require('express-rate-limit');
const { createProxyMiddleware } = require('http-proxy-middleware');
const jwt = require('jsonwebtoken');

const app = express();
app.use(express.json());

const port = process.env.PORT || {{.Port}};
const secret = process.env.JWT_SECRET || 'change-me';

// Global rate limit, keyed by client IP.
app.use(rateLimit({
  windowMs: {{.Window}} * 60 * 1000,
  max: {{.Max}},
  standardHeaders: true,
}));

app.post('/auth/login', (req, res) => {
  const { username } = req.body || {};
  if (!username) {
    return res.status(400).json({ error: 'username required' });
  }
  const token = jwt.sign({ sub: username }, secret, { expiresIn: '1h' });
  res.json({ token });
});

// JWT validation ahead of all proxied routes.
function authenticate(req, res, next) {
  const header = req.headers.authorization || '';
  const token = header.startsWith('Bearer ') ? header.slice(7) : null;
  if (!token) {
    return res.status(401).json({ error: 'missing token' });
  }
  try {
    req.user = jwt.verify(token, secret);
    next();
  } catch (err) {
    res.status(401).json({ error: 'invalid token' });
  }
}

{{range .Routes -}}
app.use('{{.Prefix}}', authenticate, createProxyMiddleware({
  target: '{{.Upstream}}',
  changeOrigin: true,
}));
{{end}}
app.listen(port, () => {
  console.log('api-gateway listening on port ' + port);
});
{{end}}

{{- define "env" -}}
PORT={{.Port}}
JWT_SECRET=
{{end}}

{{- define "dockerfile" -}}
FROM node:20-alpine
WORKDIR /app
COPY package.json ./
RUN npm install --omit=dev
COPY src ./src
EXPOSE {{.Port}}
CMD ["node", "src/index.js"]
{{end}}
`
