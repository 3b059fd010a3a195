package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/core/services"
)

func file(name string) domain.UploadedFile {
	return domain.UploadedFile{Name: name, Content: []byte(name)}
}

func TestGroupFiles(t *testing.T) {
	groups, errs := services.GroupFiles([]domain.UploadedFile{
		file("WM01/lok.txt"),
		file("WM01/NAL_CZYNSZ.TXT"),
		file(`WM02\exports\pow_czynsz.txt`),
		file("WM02/wplaty.txt"),
		file("WM01/lok.wmb"),
		file("WM03/lok.wmb"),
	})

	assert.Empty(t, errs)
	require.Len(t, groups, 2)

	g := groups["WM01"]
	require.NotNil(t, g)
	assert.Equal(t, "WM01", g.HOAExternalID)
	require.NotNil(t, g.Apartments)
	assert.Equal(t, "WM01/lok.txt", g.Apartments.Name)
	require.NotNil(t, g.Charges)
	assert.Nil(t, g.Notifications)
	assert.Nil(t, g.Payments)

	g = groups["WM02"]
	require.NotNil(t, g)
	assert.Nil(t, g.Apartments)
	require.NotNil(t, g.Notifications)
	assert.Equal(t, `WM02\exports\pow_czynsz.txt`, g.Notifications.Name)
	require.NotNil(t, g.Payments)

	_, ok := groups["WM03"]
	assert.False(t, ok, "ignored files never create a group")
}

func TestGroupFiles_Rejections(t *testing.T) {
	groups, errs := services.GroupFiles([]domain.UploadedFile{
		file("lok.txt"),
		file("WM01/lokale.txt"),
		file("WM01/"),
	})

	assert.Empty(t, groups)
	require.Len(t, errs, 3)
	assert.Equal(t, "lok.txt", errs[0].File)
	assert.Empty(t, errs[0].HOAID)
	assert.Equal(t, "WM01", errs[1].HOAID)
	assert.Contains(t, errs[1].Message, "lokale.txt")
}

func TestGroupFiles_LastDuplicateWins(t *testing.T) {
	first := domain.UploadedFile{Name: "WM01/lok.txt", Content: []byte("first")}
	second := domain.UploadedFile{Name: "wm01/../WM01/LOK.txt", Content: []byte("second")}

	groups, errs := services.GroupFiles([]domain.UploadedFile{first, second})

	assert.Empty(t, errs)
	require.Contains(t, groups, "WM01")
	assert.Equal(t, []byte("second"), groups["WM01"].Apartments.Content)
}
