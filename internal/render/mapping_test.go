package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/tablegen/internal/schema"
)

func TestMappingDescriptor_Accounts(t *testing.T) {
	r := newRenderer(t, DefaultOptions())

	a, err := r.MappingDescriptor(accounts(t))
	require.NoError(t, err)
	doc := string(a.Content)

	assert.Equal(t, ".xml", a.Ext)
	assert.Contains(t, doc, `<mapper namespace="pojo.AccountsEntity" table="ACCOUNTS">`)
	assert.Contains(t, doc, "<sql id=\"baseColumns\">\n\t\tA.ID, A.EMAIL, A.BALANCE, A.ACTIVE\n\t</sql>")
	assert.Contains(t, doc, "FROM ACCOUNTS A\n\t</select>")
	assert.Contains(t, doc, "WHERE A.ID = :id\n\t</select>")
	assert.Contains(t, doc, "WHERE A.code LIKE :value")
	assert.Contains(t, doc, "INSERT INTO ACCOUNTS (ID, EMAIL, BALANCE, ACTIVE)\n\t\tVALUES (:id, :email, :balance, :active)")
	assert.Contains(t, doc, "SET ID = :id,\n\t\t    EMAIL = :email,\n\t\t    BALANCE = :balance,\n\t\t    ACTIVE = :active\n\t\tWHERE ID = :id")
	assert.Contains(t, doc, "DELETE FROM ACCOUNTS A\n\t\tWHERE A.ID = :value")
}

func TestMappingDescriptor_EscapesIdentifiers(t *testing.T) {
	r := newRenderer(t, Options{Namespace: "pojo", Suffix: "Entity"})
	table := &schema.Table{
		Name: "r&d",
		Columns: []schema.Column{
			column(t, "a<b", schema.CodeVarChar, 10, 0),
		},
	}

	a, err := r.MappingDescriptor(table)
	require.NoError(t, err)
	doc := string(a.Content)

	assert.Contains(t, doc, `table="r&amp;d"`)
	assert.Contains(t, doc, "R.a&lt;b")
	assert.NotContains(t, doc, "a<b")
}

func TestAlias(t *testing.T) {
	assert.Equal(t, "A", Alias("accounts"))
	assert.Equal(t, "O", Alias("ORDERS"))
	assert.Equal(t, "T", Alias(""))
}
