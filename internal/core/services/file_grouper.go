package services

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/SscSPs/hoa_billing_app/internal/apperrors"
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
)

// Canonical export file names.
const (
	ApartmentsFileName    = "lok.txt"
	ChargesFileName       = "nal_czynsz.txt"
	NotificationsFileName = "pow_czynsz.txt"
	PaymentsFileName      = "wplaty.txt"
	ignoredFileSuffix     = ".wmb"
)

var fileRoles = map[string]domain.FileRole{
	ApartmentsFileName:    domain.RoleApartments,
	ChargesFileName:       domain.RoleCharges,
	NotificationsFileName: domain.RoleNotifications,
	PaymentsFileName:      domain.RolePayments,
}

// GroupFiles sorts uploaded files into per-HOA groups keyed by HOA external id.
// Files that cannot be placed are reported individually and left out; a later
// duplicate of the same role replaces the earlier one.
func GroupFiles(files []domain.UploadedFile) (map[string]*domain.FileGroup, []domain.ImportError) {
	groups := make(map[string]*domain.FileGroup)
	var errs []domain.ImportError

	for i := range files {
		f := files[i]
		hoaID, name, err := splitUploadPath(f.Name)
		if err != nil {
			errs = append(errs, domain.ImportError{File: f.Name, Message: err.Error()})
			continue
		}
		if strings.HasSuffix(name, ignoredFileSuffix) {
			continue
		}
		role, ok := fileRoles[name]
		if !ok {
			errs = append(errs, domain.ImportError{
				HOAID:   hoaID,
				File:    f.Name,
				Message: fmt.Sprintf("%v: %s", apperrors.ErrUnrecognizedFile, name),
			})
			continue
		}

		g, ok := groups[hoaID]
		if !ok {
			g = &domain.FileGroup{HOAExternalID: hoaID}
			groups[hoaID] = g
		}
		switch role {
		case domain.RoleApartments:
			g.Apartments = &f
		case domain.RoleCharges:
			g.Charges = &f
		case domain.RoleNotifications:
			g.Notifications = &f
		case domain.RolePayments:
			g.Payments = &f
		}
	}
	return groups, errs
}

// splitUploadPath returns the HOA external id and the lower-cased base name of an upload path.
func splitUploadPath(name string) (string, string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	dir, base := path.Split(p)
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return "", "", fmt.Errorf("%w: %q has no HOA directory", apperrors.ErrUnrecognizedFile, name)
	}
	if base == "" {
		return "", "", fmt.Errorf("%w: %q has no file name", apperrors.ErrUnrecognizedFile, name)
	}
	hoaID := dir
	if i := strings.Index(dir, "/"); i >= 0 {
		hoaID = dir[:i]
	}
	return hoaID, strings.ToLower(base), nil
}

// sortedGroupIDs returns the HOA ids of groups in ascending order.
func sortedGroupIDs(groups map[string]*domain.FileGroup) []string {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
