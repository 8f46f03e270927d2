package mcpserver

// NamingContract describes the canonical file-naming grammar that LLM
// consumers should follow when referring to or constructing entry names.
const NamingContract = `# File Naming Contract

Every entry in the collection follows this file-naming grammar.

## Structure

` + "```" + `
IDENTIFIER==SIGNATURE--TITLE__KEYWORDS.EXTENSION
` + "```" + `

Each component is introduced by its marker; the identifier alone drops its
marker when it leads the name. The canonical order is identifier,
signature, title, keywords.

## Components

1. **Identifier** (required): ` + "`" + `YYYYMMDDTHHMMSS` + "`" + ` — the creation
   date and time, e.g. ` + "`" + `20231019T204900` + "`" + `. When not the leading
   component it is introduced by ` + "`" + `@@` + "`" + `.
2. **Signature** (optional): introduced by ` + "`" + `==` + "`" + `. Free-form
   sequencing token, e.g. ` + "`" + `==1b2` + "`" + `.
3. **Title** (optional): introduced by ` + "`" + `--` + "`" + `. Lowercase words
   joined with single hyphens, e.g. ` + "`" + `--thursday-19-october-2023` + "`" + `.
4. **Keywords** (optional): introduced by ` + "`" + `__` + "`" + `, members joined
   with ` + "`" + `_` + "`" + `, sorted, e.g. ` + "`" + `__journal_work` + "`" + `.
5. **Extension** (required): one of ` + "`" + `.org` + "`" + `, ` + "`" + `.md` + "`" + `,
   ` + "`" + `.txt` + "`" + `.

## Rules

1. Titles and keywords are sluggified: lowercase, ASCII letters and digits,
   hyphens inside titles, no delimiter characters inside keywords.
2. A file counts as a journal entry only when its keyword segment carries
   every configured journal keyword as a contiguous sorted run.
3. Keywords are sorted lexicographically before rendering.
4. Never invent identifiers; derive them from the entry's date or call the
   ` + "`" + `resolve_journal_entry` + "`" + ` tool and let it name the file.
5. Link to other entries by identifier: ` + "`" + `[[denote:20231019T204900]]` + "`" + `
   in Org, ` + "`" + `[text](denote:20231019T204900)` + "`" + ` in Markdown.

## Examples

` + "```" + `
20231019T204900--thursday-19-october-2023__journal.org
20231019T204900==a1--thursday__journal_personal.md
__journal@@20231019T204900.txt      (keywords-first component order)
` + "```" + `
`
