// Package iobject implements a codec for the Internet Object document
// format: a JSON-like value grammar with schema-first validation, compact
// positional serialization, and a recoverable parser that never aborts on
// a single bad token.
//
// The pipeline mirrors the document's own structure: a Tokenizer turns
// source bytes into typed Tokens, a Parser assembles them into a tagged
// AST rooted at a DocumentNode, a Compiler turns a schema AST into a
// compiled Schema of MemberDefs, a Processor applies a Schema to a data
// AST producing validated records via the TypeRegistry, and a Stringifier
// reverses the whole process back to canonical text.
package iobject
