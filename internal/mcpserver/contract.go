package mcpserver

// FrontmatterContract describes the canonical document frontmatter that
// LLM consumers should follow when authoring or repairing documentation.
const FrontmatterContract = `# Ansuz Frontmatter Contract

Every Markdown document in the corpus MUST carry this frontmatter.

## Structure

` + "```" + `markdown
---
title: Human-readable title           # REQUIRED
description: One-sentence summary     # REQUIRED
category: guide                       # REQUIRED - see list below
tags: [setup, quickstart]             # REQUIRED - inline or block list
last_updated: 2025-06-01              # REQUIRED - ISO-8601 date
related:                              # OPTIONAL - paths to related docs
  - ./other-doc.md
version: 1.2.0                       # OPTIONAL - doc content version
---

# Title matching the frontmatter

Body in standard Markdown.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "`" + `---` + "`" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **Five fields are required:** title, description, category, tags,
   last_updated. A document missing any of them is flagged as incomplete.
3. **Category** must be one of: getting-started, guide, reference,
   contributing, roadmap, architecture, example, misc, documentation.
   Unknown values are normalized to misc.
4. **Tags** are lowercase, kebab-case. Inline ` + "`" + `[a, b]` + "`" + ` and block list
   forms are equivalent.
5. **Links** use relative paths with the ` + "`" + `.md` + "`" + ` extension
   (` + "`" + `./sibling.md` + "`" + `, ` + "`" + `../reference/api.md` + "`" + `) or rooted
   ` + "`" + `/docs/...` + "`" + ` paths. Linked targets must exist.
6. **Related Documents.** A ` + "`" + `## Related Documents` + "`" + ` section with at
   least one internal link improves the quality score.
7. **Structure.** Exactly one H1, at least two H2 sections, and fenced code
   blocks tagged with a language.

## Example

` + "```" + `markdown
---
title: Deploying to Production
description: Step-by-step production deployment checklist
category: guide
tags: [deploy, production]
last_updated: 2025-06-01
---

# Deploying to Production

## Prerequisites

See [the setup guide](../guides/setup.md).

## Steps

(fenced bash code block with the deploy command)

## Related Documents

- [Rollback Procedure](./rollback.md)
` + "```" + `
`
