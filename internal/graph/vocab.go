// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import "strings"

// Namespace is the base IRI for every entity, class and property the
// ingesters produce.
const Namespace = "http://example.org/hsr-ontology#"

const (
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
	owlNS  = "http://www.w3.org/2002/07/owl#"
)

// Standard vocabulary.
const (
	RDFType           = rdfNS + "type"
	RDFSLabel         = rdfsNS + "label"
	RDFSComment       = rdfsNS + "comment"
	RDFSClass         = rdfsNS + "Class"
	RDFSSubClassOf    = rdfsNS + "subClassOf"
	RDFSDomain        = rdfsNS + "domain"
	RDFSRange         = rdfsNS + "range"
	OWLObjectProperty = owlNS + "ObjectProperty"
)

// Domain classes.
var (
	ClassCharacter          = IRI("Character")
	ClassEnemies            = IRI("Enemies")
	ClassLightCone          = IRI("LightCone")
	ClassPath               = IRI("Path")
	ClassElement            = IRI("Element")
	ClassSet                = IRI("Set")
	ClassCharacteristic     = IRI("Characteristic")
	ClassMainCharacteristic = IRI("MainCharacteristic")
	ClassSubCharacteristic  = IRI("SubCharacteristic")
	ClassCavernRelics       = IRI("CavernRelics")
	ClassPlanarRelics       = IRI("PlanarRelics")
	ClassTeam               = IRI("Team")
)

// Domain properties.
var (
	PropSourceURL        = IRI("sourceURL")
	PropHasDPS           = IRI("hasDPS")
	PropHasSupport       = IRI("hasSupport")
	PropHasSustain       = IRI("hasSustain")
	PropHasMember        = IRI("hasMember")
	PropHasPath          = IRI("hasPath")
	PropHasElement       = IRI("hasElement")
	PropLightConeHasPath = IRI("lightConeHasPath")
)

// ProvenancePredicates are the bookkeeping predicates (source pages and
// free-text effect descriptions) that a cleaned export leaves out.
var ProvenancePredicates = []string{PropSourceURL, RDFSComment}

// IRI returns the namespaced IRI for a local name (usually an entity key).
func IRI(local string) string {
	return Namespace + local
}

var prefixes = []struct{ prefix, ns string }{
	{"hsr:", Namespace},
	{"rdf:", rdfNS},
	{"rdfs:", rdfsNS},
	{"owl:", owlNS},
}

// Compact shortens a known-namespace IRI to prefix form for display
// ("hsr:Kafka", "rdf:type"). Other strings are returned unchanged.
func Compact(iri string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(iri, p.ns) {
			return p.prefix + strings.TrimPrefix(iri, p.ns)
		}
	}
	return iri
}

// Expand is the inverse of Compact. Strings without a known prefix are
// returned unchanged.
func Expand(s string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p.prefix) {
			return p.ns + strings.TrimPrefix(s, p.prefix)
		}
	}
	return s
}
