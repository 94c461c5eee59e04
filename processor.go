package iobject

// ProcessSchema applies schema to dataNode, producing a validated record
// keyed by the names in schema.MemberOrder (plus extras when schema.Open),
// per §4.6. The record is a plain Go map and keeps no member order; the
// declaration order is available from schema.MemberOrder. dataNode must
// be an *ObjectNode; an *ErrorNode
// (left behind by the parser's recovery) is reported as-is.
//
// When collector is non-nil, per-member validation failures are
// collected instead of aborting: the record keeps its shape with an
// error placeholder standing in for the failed member, mirroring the
// state machine in §4.6 ("ErrorCollected" vs "Recorded").
func ProcessSchema(dataNode Node, schema *Schema, defs *Definitions, collector *ErrorCollector) (map[string]any, *CodecError) {
	switch n := dataNode.(type) {
	case *ObjectNode:
		return processObject(n, schema, defs, collector)
	case *ErrorNode:
		return nil, n.Err
	default:
		return nil, NewCodecError(KindExpectedObject, "expected an object", rangeOf(dataNode))
	}
}

// ProcessCollection applies schema to every item of coll, recording each
// failing item's index as CollectionIndex on its error (§4.6 "Collections").
func ProcessCollection(coll *CollectionNode, schema *Schema, defs *Definitions, collector *ErrorCollector) ([]map[string]any, *CodecError) {
	records := make([]map[string]any, 0, len(coll.Items))
	for i, item := range coll.Items {
		before := len(collector.Errors())
		rec, err := ProcessSchema(item, schema, defs, collector)
		for _, collected := range collector.Errors()[before:] {
			collected.WithCollectionIndex(i)
		}
		if err != nil {
			tagged := err.WithCollectionIndex(i)
			if collector != nil {
				collector.Add(tagged)
				records = append(records, errorPlaceholder(tagged))
				continue
			}
			return nil, tagged
		}
		records = append(records, rec)
	}
	return records, nil
}

func errorPlaceholder(err *CodecError) map[string]any {
	return map[string]any{
		"__error":  true,
		"category": string(err.Category),
		"message":  err.Message,
		"name":     err.Kind,
	}
}

// processObject implements the per-member loop: members are matched by
// key when present, otherwise consumed positionally in schema.MemberOrder
// declaration order (§4.6 "Positional mode" / "Per-member loop").
func processObject(obj *ObjectNode, schema *Schema, defs *Definitions, collector *ErrorCollector) (map[string]any, *CodecError) {
	record := make(map[string]any, len(schema.MemberOrder))

	keyed := make(map[string]Node, len(obj.Members))
	usedKeys := make(map[string]bool, len(obj.Members))
	var positional []Node
	for _, m := range obj.Members {
		if key := m.KeyName(); key != "" {
			keyed[key] = m.Value
		} else {
			positional = append(positional, m.Value)
		}
	}

	posIdx := 0
	for _, name := range schema.MemberOrder {
		def := schema.Members[name]

		var node Node
		if n, ok := keyed[name]; ok {
			node = n
			usedKeys[name] = true
		} else if posIdx < len(positional) {
			node = positional[posIdx]
			posIdx++
		}

		typeDef, ok := globalRegistry.Get(def.Type)
		if !ok {
			return nil, NewCodecError(KindInvalidType, "unknown type "+def.Type, rangeOf(node)).WithPath(def.Path)
		}

		val, err := typeDef.Parse(node, def, defs, -1)
		if err != nil {
			if collector != nil {
				collector.Add(err)
				record[name] = errorPlaceholder(err)
				continue
			}
			return nil, err
		}
		record[name] = val
	}

	if schema.Open {
		for _, m := range obj.Members {
			key := m.KeyName()
			if key == "" || usedKeys[key] {
				continue
			}
			if _, known := schema.Members[key]; known {
				continue
			}
			if schema.Wildcard != nil {
				if typeDef, ok := globalRegistry.Get(schema.Wildcard.Type); ok {
					val, err := typeDef.Parse(m.Value, schema.Wildcard, defs, -1)
					if err != nil {
						if collector != nil {
							collector.Add(err)
							record[key] = errorPlaceholder(err)
							continue
						}
						return nil, err
					}
					record[key] = val
					continue
				}
			}
			record[key] = m.Value.ToValue(defs)
		}
	}

	return record, nil
}
