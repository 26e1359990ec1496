// Package catalog supplies the selectable options of action forms: the
// versioned models available to the configured key, partitioned by task, and
// the static lists of safety categories, thresholds, languages and chat roles.
package catalog
