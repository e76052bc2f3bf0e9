package format

import "strings"

// KeywordTable is the set of reserved words the formatter recognizes. It is
// immutable after construction and injected into the Formatter, so dialect
// variants can coexist without process-wide state.
type KeywordTable map[string]struct{}

// NewKeywordTable builds a table from the given words (case-insensitive).
func NewKeywordTable(words ...string) KeywordTable {
	t := make(KeywordTable, len(words))
	for _, w := range words {
		t[strings.ToUpper(w)] = struct{}{}
	}
	return t
}

// Contains reports whether word is in the table, ignoring case.
func (t KeywordTable) Contains(word string) bool {
	_, ok := t[strings.ToUpper(word)]
	return ok
}

// DefaultKeywords is the standard Oracle PL/SQL reserved word set used for
// keyword casing and by the splitter's structural triggers.
var DefaultKeywords = NewKeywordTable(
	"ALL", "AND", "AS", "ASC", "BEGIN", "BETWEEN", "BODY", "BOOLEAN", "BULK",
	"BY", "CASE", "CHAR", "CLOB", "CLOSE", "COLLECT", "COMMIT", "CONSTANT",
	"CREATE", "CURSOR", "DATE", "DECLARE", "DEFAULT", "DELETE", "DESC",
	"DISTINCT", "ELSE", "ELSIF", "END", "EXCEPTION", "EXECUTE", "EXISTS",
	"EXIT", "FETCH", "FOR", "FROM", "FUNCTION", "GROUP", "HAVING", "IF",
	"IMMEDIATE", "IN", "INDEX", "INNER", "INSERT", "INTEGER", "INTERSECT",
	"INTO", "IS", "JOIN", "LEFT", "LIKE", "LIMIT", "LOOP", "MERGE", "MINUS",
	"NOT", "NULL", "NUMBER", "ON", "OPEN", "OR", "ORDER", "OTHERS", "OUT",
	"OUTER", "PACKAGE", "PLS_INTEGER", "PRAGMA", "PROCEDURE", "RAISE",
	"RECORD", "REPLACE", "RETURN", "RETURNING", "RIGHT", "ROLLBACK",
	"ROWTYPE", "SELECT", "SET", "SUBTYPE", "TABLE", "THEN", "TRIGGER",
	"TYPE", "UNION", "UPDATE", "USING", "VALUES", "VARCHAR2", "VIEW", "WHEN",
	"WHERE", "WHILE", "WITH",
)

// dataTypes are the tokens the splitter accepts as the start of a variable
// declaration after IS/AS on a routine header.
var dataTypes = []string{
	"VARCHAR2", "NVARCHAR2", "VARCHAR", "NUMBER", "PLS_INTEGER",
	"BINARY_INTEGER", "INTEGER", "INT", "DATE", "TIMESTAMP", "BOOLEAN",
	"CHAR", "NCHAR", "CLOB", "NCLOB", "BLOB", "RAW", "LONG", "FLOAT",
	"XMLTYPE", "SYS_REFCURSOR",
}
