package patch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
)

func TestDescriptor(t *testing.T) {
	t.Parallel()

	t.Run("string forms", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "PlayerAgent.TakeDamage(..)", patch.Method("PlayerAgent", "TakeDamage").String())
		assert.Equal(t, "PlayerAgent.TakeDamage(float, bool)", patch.Method("PlayerAgent", "TakeDamage").Params("float", "bool").String())
		assert.Equal(t, "PlayerAgent.Heal()", patch.Method("PlayerAgent", "Heal").Params().String())
		assert.Equal(t, "PlayerAgent.get_Health(..)", patch.Getter("PlayerAgent", "Health").String())
		assert.Equal(t, "?.set_Health(float)", patch.Setter("", "Health").Params("float").String())
	})

	t.Run("params are copied", func(t *testing.T) {
		t.Parallel()
		shapes := []patch.TypeRef{"float"}
		d := patch.Method("PlayerAgent", "TakeDamage").Params(shapes...)
		shapes[0] = "int"

		got, ok := d.ParamShapes()
		assert.True(t, ok)
		assert.Equal(t, []patch.TypeRef{"float"}, got)

		got[0] = "bool"
		again, _ := d.ParamShapes()
		assert.Equal(t, []patch.TypeRef{"float"}, again)

		_, ok = patch.Method("PlayerAgent", "TakeDamage").ParamShapes()
		assert.False(t, ok)
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()
		d := patch.Setter("PlayerAgent", "Health")
		owner, ok := d.Owner()
		assert.True(t, ok)
		assert.Equal(t, patch.TypeRef("PlayerAgent"), owner)
		assert.Equal(t, "Health", d.Name())
		assert.Equal(t, host.Setter, d.Kind())

		_, ok = patch.Method("", "Update").Owner()
		assert.False(t, ok)
	})

	t.Run("validate", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, patch.Method("A", "B").Validate())
		assert.ErrorIs(t, patch.Method("A", " ").Validate(), patch.ErrInvalidDescriptor)
		assert.ErrorIs(t, patch.Descriptor{}.Validate(), patch.ErrInvalidDescriptor)
	})

	t.Run("hooks", func(t *testing.T) {
		t.Parallel()
		assert.True(t, patch.Hooks{}.IsZero())
		h := patch.Hooks{After: func(*host.Invocation) {}}
		assert.False(t, h.IsZero())
		assert.NotNil(t, h.Detour().After)
		assert.Nil(t, h.Detour().Before)
	})
}
