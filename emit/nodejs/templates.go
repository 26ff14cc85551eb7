package nodejs

const templates = `
{{- define "package" -}}
{
  "name": "{{.Name}}",
  "version": "0.1.0",
  "private": true,
  "main": "src/index.js",
  "scripts": {
    "start": "node src/index.js"
  },
  "dependencies": {
    "express": "^4.19.2",
    "bcryptjs": "^2.4.3"{{if eq .Database "mongodb"}},
    "mongoose": "^8.3.1"{{end}}{{if eq .Database "postgresql"}},
    "pg": "^8.11.5"{{end}}{{if .PublishesEvents}},
    "kafkajs": "^2.2.4"{{end}}
  }
}
{{end}}

{{- define "index" -}}
const express = require('express');

const app = express();
app.use(express.json());

const port = process.env.PORT || {{.Port}};

app.get('/health', (req, res) => {
  res.json({ service: '{{.Name}}', status: 'ok' });
});

app.listen(port, () => {
  console.log('{{.Name}} listening on port ' + port);
});
{{end}}

{{- define "env" -}}
PORT={{.Port}}
DATABASE_URL=
{{- if .PublishesEvents}}
KAFKA_BROKERS=
{{- end}}
{{end}}

{{- define "model" -}}
const bcrypt = require('bcryptjs');

class {{.Entity.Name}} {
  constructor() {
    this.id = null;
{{- range .Entity.Fields}}
{{- if .Hashed}}
    this.{{.Camel}}Hash = null;
{{- else}}
    this.{{.Camel}} = null;
{{- end}}
{{- end}}
  }
{{- range .Entity.Fields}}
{{- if .Hashed}}

  // One-way hashed: raw input is never stored.
  set{{.Pascal}}(raw) {
    this.{{.Camel}}Hash = bcrypt.hashSync(raw, 10);
  }

  verify{{.Pascal}}(raw) {
    return bcrypt.compareSync(raw, this.{{.Camel}}Hash);
  }
{{- end}}
{{- end}}
}

{{.Entity.Name}}.schema = {
{{- range .Entity.Fields}}
  {{.Camel}}{{if .Hashed}}Hash{{end}}: {{.JSType}},
{{- end}}
};

module.exports = {{.Entity.Name}};
{{end}}

{{- define "command" -}}
const {{.Entity.Name}} = require('../models/{{.Entity.File}}');

// Command side: applies writes for {{.Entity.Name}}.
async function create{{.Entity.Name}}(input) {
  const entity = new {{.Entity.Name}}();
{{- range .Entity.Fields}}
{{- if .Hashed}}
  entity.set{{.Pascal}}(input.{{.Camel}});
{{- else}}
  entity.{{.Camel}} = input.{{.Camel}};
{{- end}}
{{- end}}
  return entity;
}

module.exports = { create{{.Entity.Name}} };
{{end}}

{{- define "query" -}}
// Query side: read model lookup for {{.Entity.Name}}.
async function get{{.Entity.Name}}(id) {
  return null;
}

module.exports = { get{{.Entity.Name}} };
{{end}}

{{- define "service" -}}
const repository = require('../repositories/{{.Entity.File}}-repository');

async function get(id) {
  return repository.find(id);
}

async function save(entity) {
  return repository.save(entity);
}

module.exports = { get, save };
{{end}}

{{- define "repository" -}}
async function find(id) {
  return null;
}

async function save(entity) {
  return entity;
}

module.exports = { find, save };
{{end}}

{{- define "publisher" -}}
const { Kafka } = require('kafkajs');

const TOPICS = {
{{- range .Events}}
  {{.}}: '{{.}}',
{{- end}}
};

const kafka = new Kafka({
  clientId: '{{.Name}}',
  brokers: (process.env.KAFKA_BROKERS || 'localhost:9092').split(','),
});

const producer = kafka.producer();

async function publish(topic, payload) {
  await producer.connect();
  await producer.send({
    topic,
    messages: [{ value: JSON.stringify(payload) }],
  });
}

module.exports = { TOPICS, publish };
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
