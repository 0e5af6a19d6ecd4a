package main

import (
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/prompts"
	"dracor-mcp/internal/resources"
	"dracor-mcp/internal/resources/catalog"
	"dracor-mcp/internal/server"
	"dracor-mcp/internal/tools"
	"dracor-mcp/internal/tools/admin"
	"dracor-mcp/internal/tools/corpora"
	"dracor-mcp/internal/tools/docs"
	"dracor-mcp/internal/tools/dts"
	"dracor-mcp/internal/tools/plays"
	"dracor-mcp/internal/tools/search"
	"dracor-mcp/internal/tools/wikidata"
)

// toolVersion is reported for every registered tool and resource
const toolVersion = "1.0.0"

// toolFamilies collects the tool definitions of every family, each backed
// by a service sharing the one API client
func toolFamilies(srv *server.Server) []struct {
	name string
	defs []tools.Definition
} {
	client := srv.Client()

	return []struct {
		name string
		defs []tools.Definition
	}{
		{"corpora", corpora.Definitions(corpora.NewService(client))},
		{"plays", plays.Definitions(plays.NewService(client))},
		{"search", search.Definitions(search.NewService(client))},
		{"wikidata", wikidata.Definitions(wikidata.NewService(client))},
		{"dts", dts.Definitions(dts.NewService(client))},
		{"docs", docs.Definitions(docs.NewService(client))},
		{"admin", admin.Definitions(admin.NewService(client))},
	}
}

func registerDefinitions(registry tools.ToolRegistry, log *logger.Logger, family string, defs []tools.Definition) error {
	for _, def := range defs {
		factory := tools.NewDefinitionFactory(def, toolVersion, map[string]string{
			"dracor_api": "v1",
		})
		if err := registry.Register(def.Name, factory); err != nil {
			log.Error("Failed to register tool",
				"family", family,
				"name", def.Name,
				"error", err)
			return err
		}
	}

	log.Info("Registered tool family",
		"family", family,
		"count", len(defs))
	return nil
}

func registerAllTools(srv *server.Server, log *logger.Logger) error {
	log.Info("Registering all available tools")

	registry := srv.ToolRegistry()

	total := 0
	for _, family := range toolFamilies(srv) {
		if err := registerDefinitions(registry, log, family.name, family.defs); err != nil {
			return err
		}
		total += len(family.defs)
	}

	log.Info("Successfully registered all tools", "count", total)
	return nil
}

func registerAllResources(srv *server.Server, log *logger.Logger) error {
	log.Info("Registering all available resources")

	registry := srv.ResourceRegistry()
	service := catalog.NewService(srv.Client())

	for _, def := range catalog.Definitions(service) {
		factory := resources.NewDefinitionFactory(def, toolVersion)
		if err := registry.Register(def.URI, factory); err != nil {
			log.Error("Failed to register resource",
				"uri", def.URI,
				"error", err)
			return err
		}
	}

	// Templates carry no per-URI lifecycle, they register on the adapter
	template := resources.NewTemplate(catalog.CorpusTemplate(service))
	if err := srv.Adapter().RegisterResourceTemplate(template); err != nil {
		log.Error("Failed to register resource template", "error", err)
		return err
	}

	log.Info("Successfully registered all resources")
	return nil
}

func registerAllPrompts(srv *server.Server, log *logger.Logger) error {
	log.Info("Registering all available prompts")

	adapter := srv.Adapter()
	defs := prompts.Definitions()
	for _, def := range defs {
		if err := adapter.RegisterPrompt(prompts.New(def)); err != nil {
			log.Error("Failed to register prompt",
				"name", def.Name,
				"error", err)
			return err
		}
	}

	log.Info("Successfully registered all prompts", "count", len(defs))
	return nil
}
