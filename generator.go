package main

import "encoding/json"
import "fmt"
import "math/rand"


/*
 * A Document is an unordered mapping from field name to field content.
 * Documents are immutable once generated: the same instance may appear in
 * many batches concurrently.
 */
type Document map[string]string


/* Field names are random lowercase strings of up to this length. */
const maxFieldNameLen = 10

/* How many value-mutated variants BuildPool derives on top of the base set. */
const poolVariantCount = 10


/*
 * Generators create the synthetic documents that the workers write.
 */
type DocumentGenerator struct {
    maxFields int
    maxFieldSize int
}


func NewDocumentGenerator(maxFields int, maxFieldSize int) (*DocumentGenerator, error) {
    if maxFields < 1 {
        return nil, fmt.Errorf("max fields per document must be at least 1, not %v", maxFields)
    }

    if maxFieldSize < 1 {
        return nil, fmt.Errorf("max field size must be at least 1, not %v", maxFieldSize)
    }

    var g DocumentGenerator
    g.maxFields = maxFields
    g.maxFieldSize = maxFieldSize
    return &g, nil
}


/* Generate a document with a random field set and random contents. */
func (g *DocumentGenerator) Generate() Document {
    doc := Document{}

    for i := 1 + rand.Intn(g.maxFields); i > 0; i-- {
        doc[randomString(maxFieldNameLen)] = randomString(g.maxFieldSize)
    }

    return doc
}


/*
 * Derive a new document from an existing one: same field set, freshly
 * randomized contents.  This widens content diversity without growing the
 * space of field shapes the store has to map.
 */
func (g *DocumentGenerator) Mutate(doc Document) Document {
    variant := Document{}

    for field := range doc {
        variant[field] = randomString(g.maxFieldSize)
    }

    return variant
}


/*
 * A DocumentPool is a fixed set of pre-generated documents, built once
 * before the run starts.  It is never mutated afterwards, so all workers
 * read from it concurrently without locking.
 *
 * Each document is stored alongside its JSON encoding so that batch
 * assembly is pure concatenation.
 */
type DocumentPool struct {
    docs []Document
    encoded [][]byte
}


/*
 * Build a pool of count base documents plus a handful of variants derived by
 * re-randomizing the values of randomly chosen base documents.
 */
func (g *DocumentGenerator) BuildPool(count int) (*DocumentPool, error) {
    if count < 1 {
        return nil, fmt.Errorf("document pool size must be at least 1, not %v", count)
    }

    var p DocumentPool

    for i := 0; i < count; i++ {
        if err := p.add(g.Generate()); err != nil {
            return nil, err
        }
    }

    for i := 0; i < poolVariantCount; i++ {
        if err := p.add(g.Mutate(p.docs[rand.Intn(count)])); err != nil {
            return nil, err
        }
    }

    return &p, nil
}


func (p *DocumentPool) add(doc Document) error {
    encoded, err := json.Marshal(doc)
    if err != nil {
        return fmt.Errorf("failure encoding document: %v", err)
    }

    p.docs = append(p.docs, doc)
    p.encoded = append(p.encoded, encoded)
    return nil
}


func (p *DocumentPool) Size() int {
    return len(p.docs)
}


/* Return the JSON encoding of a uniformly random document from the pool. */
func (p *DocumentPool) PickEncoded() []byte {
    return p.encoded[rand.Intn(len(p.encoded))]
}
