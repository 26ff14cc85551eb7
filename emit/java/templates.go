package java

const templates = `
{{- define "pom" -}}
<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>{{.Package}}</groupId>
  <artifactId>{{.Name}}</artifactId>
  <version>0.1.0</version>
  <packaging>jar</packaging>

  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.2.4</version>
  </parent>

  <properties>
    <java.version>17</java.version>
  </properties>

  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
    </dependency>
{{- if eq .Database "postgresql"}}
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-data-jpa</artifactId>
    </dependency>
    <dependency>
      <groupId>org.postgresql</groupId>
      <artifactId>postgresql</artifactId>
      <scope>runtime</scope>
    </dependency>
{{- end}}
{{- if eq .Database "mongodb"}}
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-data-mongodb</artifactId>
    </dependency>
{{- end}}
{{- if .PublishesEvents}}
    <dependency>
      <groupId>org.springframework.kafka</groupId>
      <artifactId>spring-kafka</artifactId>
    </dependency>
{{- end}}
    <dependency>
      <groupId>org.springframework.security</groupId>
      <artifactId>spring-security-crypto</artifactId>
    </dependency>
  </dependencies>
</project>
{{end}}

{{- define "application" -}}
package {{.Package}};

import org.springframework.boot.SpringApplication;
import org.springframework.boot.autoconfigure.SpringBootApplication;

@SpringBootApplication
public class Application {
    public static void main(String[] args) {
        SpringApplication.run(Application.class, args);
    }
}
{{end}}

{{- define "appyml" -}}
server:
  port: ${PORT:{{.Port}}}
spring:
  application:
    name: {{.Name}}
{{- if eq .Database "postgresql"}}
  datasource:
    url: ${DATABASE_URL}
{{- end}}
{{- if eq .Database "mongodb"}}
  data:
    mongodb:
      uri: ${DATABASE_URL}
{{- end}}
{{- if .PublishesEvents}}
  kafka:
    bootstrap-servers: ${KAFKA_BROKERS}
{{- end}}
{{end}}

{{- define "model" -}}
package {{.Package}}.model;

import java.time.Instant;
import java.util.UUID;
import org.springframework.security.crypto.bcrypt.BCryptPasswordEncoder;

public class {{.Entity.Name}} {

    private static final BCryptPasswordEncoder HASHER = new BCryptPasswordEncoder();

    private String id = UUID.randomUUID().toString();
{{- range .Entity.Fields}}
{{- if .Hashed}}
    private String {{.Camel}}Hash;
{{- else}}
    private {{.JavaType}} {{.Camel}};
{{- end}}
{{- end}}

    public String getId() { return id; }
{{- range .Entity.Fields}}
{{- if .Hashed}}

    // One-way hashed: raw input is never stored.
    public void set{{.Pascal}}(String raw) {
        this.{{.Camel}}Hash = HASHER.encode(raw);
    }

    public boolean verify{{.Pascal}}(String raw) {
        return HASHER.matches(raw, this.{{.Camel}}Hash);
    }
{{- else}}

    public {{.JavaType}} get{{.Pascal}}() { return {{.Camel}}; }

    public void set{{.Pascal}}({{.JavaType}} {{.Camel}}) { this.{{.Camel}} = {{.Camel}}; }
{{- end}}
{{- end}}
}
{{end}}

{{- define "command" -}}
package {{.Package}}.command;

import {{.Package}}.model.{{.Entity.Name}};

public class Create{{.Entity.Name}}Command {
{{- range .Entity.Fields}}
    public {{.JavaType}} {{.Camel}};
{{- end}}

    public {{.Entity.Name}} handle() {
        {{.Entity.Name}} entity = new {{.Entity.Name}}();
{{- range .Entity.Fields}}
        entity.set{{.Pascal}}({{.Camel}});
{{- end}}
        return entity;
    }
}
{{end}}

{{- define "query" -}}
package {{.Package}}.query;

import java.util.Optional;
import {{.Package}}.model.{{.Entity.Name}};

public class Get{{.Entity.Name}}Query {
    public String id;

    public Optional<{{.Entity.Name}}> handle() {
        // Query side: read model lookup goes here.
        return Optional.empty();
    }
}
{{end}}

{{- define "service" -}}
package {{.Package}}.service;

import java.util.Optional;
import {{.Package}}.model.{{.Entity.Name}};
import {{.Package}}.repository.{{.Entity.Name}}Repository;

public class {{.Entity.Name}}Service {

    private final {{.Entity.Name}}Repository repository;

    public {{.Entity.Name}}Service({{.Entity.Name}}Repository repository) {
        this.repository = repository;
    }

    public Optional<{{.Entity.Name}}> get(String id) {
        return repository.find(id);
    }

    public {{.Entity.Name}} save({{.Entity.Name}} entity) {
        return repository.save(entity);
    }
}
{{end}}

{{- define "repository" -}}
package {{.Package}}.repository;

import java.util.Optional;
import {{.Package}}.model.{{.Entity.Name}};

public class {{.Entity.Name}}Repository {

    public Optional<{{.Entity.Name}}> find(String id) {
        return Optional.empty();
    }

    public {{.Entity.Name}} save({{.Entity.Name}} entity) {
        return entity;
    }
}
{{end}}

{{- define "publisher" -}}
package {{.Package}}.event;

import org.springframework.kafka.core.KafkaTemplate;

public class EventPublisher {

{{- range .Events}}
    public static final String TOPIC_{{.}} = "{{.}}";
{{- end}}

    private final KafkaTemplate<String, String> template;

    public EventPublisher(KafkaTemplate<String, String> template) {
        this.template = template;
    }

    public void publish(String topic, String payload) {
        template.send(topic, payload);
    }
}
{{end}}

{{- define "dockerfile" -}}
FROM maven:3.9-eclipse-temurin-17 AS build
WORKDIR /src
COPY . .
RUN mvn -q package -DskipTests

FROM eclipse-temurin:17-jre
WORKDIR /app
COPY --from=build /src/target/{{.Name}}-0.1.0.jar app.jar
EXPOSE {{.Port}}
ENTRYPOINT ["java", "-jar", "app.jar"]
{{end}}
`
