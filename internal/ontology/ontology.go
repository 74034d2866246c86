// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ontology declares the classes, individuals and object
// properties of the HSR graph. Ingesters emit instance facts against
// these terms; Facts returns the schema itself so a store can be
// bootstrapped before (or after) any page is ingested.
package ontology

import (
	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/normalize"
)

// Classes are the top-level classes.
var Classes = []string{
	graph.ClassCharacter,
	graph.ClassEnemies,
	graph.ClassLightCone,
	graph.ClassPath,
	graph.ClassElement,
	graph.ClassSet,
	graph.ClassCharacteristic,
	graph.ClassMainCharacteristic,
	graph.ClassSubCharacteristic,
	graph.ClassCavernRelics,
	graph.ClassPlanarRelics,
	graph.ClassTeam,
}

// SubClass is one rdfs:subClassOf statement.
type SubClass struct {
	Class  string
	Parent string
}

// SubClasses lists the class hierarchy. Path and Element hang under the
// entity classes that carry them.
var SubClasses = []SubClass{
	{graph.ClassElement, graph.ClassLightCone},
	{graph.ClassElement, graph.ClassCharacter},
	{graph.ClassElement, graph.ClassEnemies},
	{graph.ClassPath, graph.ClassLightCone},
	{graph.ClassPath, graph.ClassCharacter},
	{graph.ClassCharacteristic, graph.ClassSet},
	{graph.ClassMainCharacteristic, graph.ClassCharacteristic},
	{graph.ClassSubCharacteristic, graph.ClassCharacteristic},
	{graph.ClassCavernRelics, graph.ClassSet},
	{graph.ClassPlanarRelics, graph.ClassSet},
}

// Paths, Elements and Characteristics are the fixed individuals of their
// classes, by display name.
var (
	Paths = []string{
		"The Preservation", "The Hunt", "The Harmony", "The Abundance",
		"The Nihility", "The Erudition", "The Destruction", "The Remembrance",
	}
	Elements = []string{"Physical", "Fire", "Ice", "Lightning", "Quantum", "Imaginary", "Wind"}

	Characteristics = []string{
		"HP", "HP%", "ATK", "ATK%", "DEF", "DEF%", "Speed", "CritRate", "CritDMG",
		"BreakEffect", "EffectHitRate", "EffectRES", "EnergyRegen",
	}
)

// Property is an object property with its domain and range classes.
type Property struct {
	Name   string
	Domain string
	Range  string
}

// IRI returns the property IRI.
func (p Property) IRI() string { return graph.IRI(p.Name) }

// Properties lists every object property, in declaration order.
var Properties = []Property{
	{"hasPath", graph.ClassCharacter, graph.ClassPath},
	{"hasElement", graph.ClassCharacter, graph.ClassElement},
	{"hasSet", graph.ClassCharacter, graph.ClassSet},
	{"hasSubCharacteristics", graph.ClassCharacter, graph.ClassCharacteristic},
	{"recommendedLightCone", graph.ClassCharacter, graph.ClassLightCone},
	{"hasWeakness", graph.ClassEnemies, graph.ClassElement},
	{"recommendedSubStats", graph.ClassCharacter, graph.ClassCharacteristic},
	{"recommendedTeam", graph.ClassCharacter, graph.ClassTeam},
	{"recommendedMainStatBody", graph.ClassCharacter, graph.ClassCharacteristic},
	{"recommendedMainStatFeet", graph.ClassCharacter, graph.ClassCharacteristic},
	{"recommendedMainStatSphere", graph.ClassCharacter, graph.ClassCharacteristic},
	{"recommendedMainStatRope", graph.ClassCharacter, graph.ClassCharacteristic},
	{"lightConeHasPath", graph.ClassLightCone, graph.ClassPath},
	{"hasAlternativeLightCones", graph.ClassCharacter, graph.ClassLightCone},
	{"hasDPS", graph.ClassTeam, graph.ClassCharacter},
	{"hasSupport", graph.ClassTeam, graph.ClassCharacter},
	{"hasSustain", graph.ClassTeam, graph.ClassCharacter},
	{"hasMember", graph.ClassTeam, graph.ClassCharacter},
}

// PathIRI returns the individual IRI for a path display name.
func PathIRI(name string) string { return graph.IRI(normalize.Key(name)) }

// ElementIRI returns the individual IRI for an element display name.
func ElementIRI(name string) string { return graph.IRI(normalize.Key(name)) }

// Facts returns the complete schema as facts in a stable order: class
// declarations, hierarchy, individuals, then properties.
func Facts() []graph.Fact {
	var out []graph.Fact
	for _, c := range Classes {
		out = append(out, graph.TypeFact(c, graph.RDFSClass))
	}
	for _, sc := range SubClasses {
		out = append(out, graph.EdgeFact(sc.Class, graph.RDFSSubClassOf, sc.Parent))
	}
	for _, p := range Paths {
		out = append(out, graph.TypeFact(PathIRI(p), graph.ClassPath))
	}
	for _, e := range Elements {
		out = append(out, graph.TypeFact(ElementIRI(e), graph.ClassElement))
	}
	for _, c := range Characteristics {
		out = append(out, graph.TypeFact(graph.IRI(normalize.Key(c)), graph.ClassCharacteristic))
	}
	for _, p := range Properties {
		iri := p.IRI()
		out = append(out,
			graph.TypeFact(iri, graph.OWLObjectProperty),
			graph.EdgeFact(iri, graph.RDFSDomain, p.Domain),
			graph.EdgeFact(iri, graph.RDFSRange, p.Range),
		)
	}
	return out
}
