package dotnet

// templates holds every text fragment this adapter renders. Template
// bodies live here, out of the compiler's sight, so the emission
// mechanism can change without touching the pipeline.
const templates = `
{{- define "csproj" -}}
<Project Sdk="Microsoft.NET.Sdk.Web">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <Nullable>enable</Nullable>
    <ImplicitUsings>enable</ImplicitUsings>
    <RootNamespace>{{.Project}}.{{.Pascal}}</RootNamespace>
  </PropertyGroup>
  <ItemGroup>
{{- if eq .Database "postgresql"}}
    <PackageReference Include="Npgsql.EntityFrameworkCore.PostgreSQL" Version="8.0.4" />
{{- end}}
{{- if eq .Database "mongodb"}}
    <PackageReference Include="MongoDB.Driver" Version="2.24.0" />
{{- end}}
{{- if .PublishesEvents}}
    <PackageReference Include="Confluent.Kafka" Version="2.3.0" />
{{- end}}
    <PackageReference Include="BCrypt.Net-Next" Version="4.0.3" />
  </ItemGroup>
</Project>
{{end}}

{{- define "program" -}}
var builder = WebApplication.CreateBuilder(args);

builder.WebHost.UseUrls($"http://0.0.0.0:{{"{"}}Environment.GetEnvironmentVariable("PORT") ?? "{{.Port}}"{{"}"}}");

var app = builder.Build();

app.MapGet("/health", () => Results.Ok(new { service = "{{.Name}}", status = "ok" }));

app.Run();
{{end}}

{{- define "appsettings" -}}
{
  "Logging": {
    "LogLevel": {
      "Default": "Information"
    }
  },
  "Service": {
    "Name": "{{.Name}}",
    "Port": {{.Port}}
  },
  "Database": {
    "ConnectionString": "${DATABASE_URL}"
  }{{if .PublishesEvents}},
  "Kafka": {
    "BootstrapServers": "${KAFKA_BROKERS}"
  }{{end}}
}
{{end}}

{{- define "model" -}}
namespace {{.Project}}.{{.Pascal}}.Models;

public class {{.Entity.Name}}
{
    public string Id { get; set; } = Guid.NewGuid().ToString();
{{- range .Entity.Fields}}
{{- if .Hashed}}

    // One-way hashed: raw input is never stored.
    public {{.CSType}} {{.Pascal}}Hash { get; private set; } = string.Empty;

    public void Set{{.Pascal}}({{.CSType}} raw)
    {
        {{.Pascal}}Hash = BCrypt.Net.BCrypt.HashPassword(raw);
    }

    public bool Verify{{.Pascal}}({{.CSType}} raw)
    {
        return BCrypt.Net.BCrypt.Verify(raw, {{.Pascal}}Hash);
    }
{{- else}}
    public {{.CSType}} {{.Pascal}} { get; set; }{{if eq .CSType "string"}} = string.Empty;{{end}}
{{- end}}
{{- end}}
}
{{end}}

{{- define "command" -}}
namespace {{.Project}}.{{.Pascal}}.Commands;

using {{.Project}}.{{.Pascal}}.Models;

public record Create{{.Entity.Name}}Command(
{{- range $i, $f := .Entity.Fields}}{{if $i}},{{end}}
    {{$f.CSType}} {{$f.Pascal}}
{{- end}});

public class Create{{.Entity.Name}}Handler
{
    public Task<{{.Entity.Name}}> Handle(Create{{.Entity.Name}}Command command)
    {
        var entity = new {{.Entity.Name}}();
{{- range .Entity.Fields}}
{{- if .Hashed}}
        entity.Set{{.Pascal}}(command.{{.Pascal}});
{{- else}}
        entity.{{.Pascal}} = command.{{.Pascal}};
{{- end}}
{{- end}}
        return Task.FromResult(entity);
    }
}
{{end}}

{{- define "query" -}}
namespace {{.Project}}.{{.Pascal}}.Queries;

using {{.Project}}.{{.Pascal}}.Models;

public record Get{{.Entity.Name}}Query(string Id);

public class Get{{.Entity.Name}}Handler
{
    public Task<{{.Entity.Name}}?> Handle(Get{{.Entity.Name}}Query query)
    {
        // Query side: read model lookup goes here.
        return Task.FromResult<{{.Entity.Name}}?>(null);
    }
}
{{end}}

{{- define "service" -}}
namespace {{.Project}}.{{.Pascal}}.Services;

using {{.Project}}.{{.Pascal}}.Models;
using {{.Project}}.{{.Pascal}}.Repositories;

public class {{.Entity.Name}}Service
{
    private readonly {{.Entity.Name}}Repository _repository;

    public {{.Entity.Name}}Service({{.Entity.Name}}Repository repository)
    {
        _repository = repository;
    }

    public Task<{{.Entity.Name}}?> Get(string id) => _repository.Find(id);

    public Task<{{.Entity.Name}}> Save({{.Entity.Name}} entity) => _repository.Save(entity);
}
{{end}}

{{- define "repository" -}}
namespace {{.Project}}.{{.Pascal}}.Repositories;

using {{.Project}}.{{.Pascal}}.Models;

public class {{.Entity.Name}}Repository
{
    public Task<{{.Entity.Name}}?> Find(string id)
    {
        return Task.FromResult<{{.Entity.Name}}?>(null);
    }

    public Task<{{.Entity.Name}}> Save({{.Entity.Name}} entity)
    {
        return Task.FromResult(entity);
    }
}
{{end}}

{{- define "publisher" -}}
namespace {{.Project}}.{{.Pascal}}.Events;

using Confluent.Kafka;

public static class Topics
{
{{- range .Events}}
    public const string {{.}} = "{{.}}";
{{- end}}
}

public class EventPublisher
{
    private readonly IProducer<Null, string> _producer;

    public EventPublisher()
    {
        var config = new ProducerConfig
        {
            BootstrapServers = Environment.GetEnvironmentVariable("KAFKA_BROKERS") ?? "localhost:9092",
        };
        _producer = new ProducerBuilder<Null, string>(config).Build();
    }

    public Task PublishAsync(string topic, string payload)
    {
        return _producer.ProduceAsync(topic, new Message<Null, string> { Value = payload });
    }
}
{{end}}

{{- define "dockerfile" -}}
FROM mcr.microsoft.com/dotnet/sdk:8.0 AS build
WORKDIR /src
COPY . .
RUN dotnet publish -c Release -o /app

FROM mcr.microsoft.com/dotnet/aspnet:8.0
WORKDIR /app
COPY --from=build /app .
EXPOSE {{.Port}}
ENTRYPOINT ["dotnet", "{{.Pascal}}.dll"]
{{end}}
`
