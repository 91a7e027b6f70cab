package diffx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,11 @@
+package main
+
+import "fmt"
+
+func main() {
+	fmt.Println("hello")
+}
+
+func add(a, b int) int {
+	return a + b
+}
diff --git a/readme.md b/readme.md
index abc1234..def5678 100644
--- a/readme.md
+++ b/readme.md
@@ -1,3 +1,4 @@
 # Project

-Old description
+New description
+Added line
`

const renameDiff = `diff --git a/old.go b/new.go
similarity index 100%
rename from old.go
rename to new.go
`

const deleteDiff = `diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index abc1234..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,2 +0,0 @@
-line one
-line two
`

func TestParse(t *testing.T) {
	cs, err := Parse(sampleDiff)
	require.NoError(t, err)
	require.Len(t, cs.Changes, 2)

	c0 := cs.Changes[0]
	assert.True(t, c0.IsNew)
	assert.Equal(t, "hello.go", c0.Path())
	assert.Equal(t, 11, c0.Added)

	c1 := cs.Changes[1]
	assert.Equal(t, "readme.md", c1.Path())
	assert.Equal(t, 2, c1.Added)
	assert.Equal(t, 1, c1.Deleted)

	files, added, deleted := cs.Stats()
	assert.Equal(t, 2, files)
	assert.Equal(t, 13, added)
	assert.Equal(t, 1, deleted)
}

func TestParseRename(t *testing.T) {
	cs, err := Parse(renameDiff)
	require.NoError(t, err)
	require.Len(t, cs.Changes, 1)

	c := cs.Changes[0]
	assert.True(t, c.IsRenamed)
	assert.Equal(t, "old.go -> new.go", c.Path())
}

func TestParseDelete(t *testing.T) {
	cs, err := Parse(deleteDiff)
	require.NoError(t, err)
	require.Len(t, cs.Changes, 1)

	c := cs.Changes[0]
	assert.True(t, c.IsDeleted)
	assert.Equal(t, "gone.txt", c.Path())
	assert.Equal(t, 2, c.Deleted)
}

func TestParseEmpty(t *testing.T) {
	cs, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, cs.Changes)
}
