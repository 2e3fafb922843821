// Package condition implements the boolean expression language used by the
// `when:` frontmatter field of rule documents.
//
// An expression is a flat sequence of terms joined by `&&` and `||`:
//
//	npm:react && npm:typescript || npm:vue
//	!file:"legacy config.json"
//	pkg:engines.node == "18" && var:profile != prod
//
// Each term is an optionally negated namespaced identifier. Most namespaces
// (npm, pip, go, cargo, composer, gem, pub, maven, gradle, nuget, file, dir)
// are existence checks against the host project. The pkg and var namespaces
// carry values and support `==`/`!=` comparisons.
//
// Operators evaluate strictly left to right with no precedence difference
// between `&&` and `||`. Authored expressions rely on this exact left-fold
// semantics; it must not be replaced with conventional precedence.
package condition
