package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

var seeds = map[docindex.Source][]string{
	docindex.SourceBlender: {
		"https://docs.blender.org/manual/en/latest/modeling/index.html",
		"https://docs.blender.org/manual/en/latest/animation/index.html",
		"https://docs.blender.org/manual/en/latest/render/index.html",
		"https://docs.blender.org/manual/en/latest/physics/index.html",
		"https://docs.blender.org/manual/en/latest/video_editing/index.html",
		"https://docs.blender.org/api/current/index.html",
	},
	docindex.SourceAfterEffects: {
		"https://ae-scripting.docsforadobe.dev/",
		"https://ae-expressions.docsforadobe.dev/",
		"https://helpx.adobe.com/after-effects/using/user-guide.html",
	},
}

// ignorePatterns reject generated pages and binary assets during a crawl.
var ignorePatterns = []string{
	`/genindex`,
	`/search`,
	`/_sources/`,
	`/_static/`,
	`/_images/`,
	`/404`,
	`(?i)\.(pdf|zip|png|jpe?g|svg)$`,
}

// essentialDirs are the Blender manual sections indexed by a local build.
var essentialDirs = []string{
	"animation",
	"compositing",
	"editors",
	"grease_pencil",
	"interface",
	"modeling",
	"movie_clip",
	"physics",
	"render",
	"scene_layout",
	"sculpt_paint",
	"video_editing",
	"addons",
	"files",
	"advanced",
}

func localSkipPolicy(allDirs bool) *docindex.SkipPolicy {
	p := docindex.DefaultSkipPolicy()
	if !allDirs {
		p.Dirs = essentialDirs
	}
	return p
}

// parseSources parses --exclude values.
func parseSources(names []string) ([]docindex.Source, error) {
	var sources []docindex.Source
	for _, name := range names {
		s, err := docindex.ParseSource(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, source := range docindex.Sources() {
		fmt.Fprintln(deps.Stdout, source)
		for _, seed := range seeds[source] {
			fmt.Fprintf(deps.Stdout, "  %s\n", seed)
		}
	}
	return nil
}
