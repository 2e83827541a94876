package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"kadoshrent/internal/entities"
	apperrors "kadoshrent/internal/errors"
	"kadoshrent/internal/gallery"
	"kadoshrent/internal/i18n"
	"kadoshrent/internal/service"
	"kadoshrent/internal/utils"
)

var homeSections = []string{"common", "hero", "navigation", "vehicleCatalog", "footer"}

type CatalogHandler struct {
	Service *service.FilterService
	Bundle  *i18n.Bundle
	Log     *logrus.Logger
}

func NewCatalogHandler(svc *service.FilterService, bundle *i18n.Bundle, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Service: svc, Bundle: bundle, Log: log}
}

// Home serves the landing page payload: localized strings plus the filtered fleet.
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(r)

	spec, err := service.ParseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, apperrors.ErrBadRequest(err.Error()))
		return
	}

	strs := make(map[string]map[string]string, len(homeSections))
	for _, s := range homeSections {
		strs[s] = loc.Section(s)
	}
	writeJSON(w, h.Log, http.StatusOK, HomeResponse{
		Locale:  loc.Locale(),
		Strings: strs,
		Search:  h.search(loc, spec),
	})
}

// VehicleDetail serves one vehicle with its gallery. ?image=i selects a thumbnail.
func (h *CatalogHandler) VehicleDetail(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(r)
	back := Link{Label: loc.T("backToFleet", "vehicleDetails"), Href: "/" + loc.Locale()}

	vehicle, err := h.Service.FindVehicle(mux.Vars(r)["vehicleId"])
	if err != nil {
		writeJSON(w, h.Log, http.StatusNotFound, NotFoundResponse{
			Locale:      loc.Locale(),
			NotFound:    true,
			Message:     loc.T("noVehicles", "vehicleCatalog"),
			BackToFleet: back,
		})
		return
	}

	selected := 0
	if raw := r.URL.Query().Get("image"); raw != "" {
		selected, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.Log, apperrors.ErrBadRequest("image must be an integer"))
			return
		}
	}

	state, err := galleryState(vehicle, loc.Locale(), selected, r.URL.Query().Has("image"))
	if err != nil {
		writeError(w, h.Log, apperrors.ErrBadRequest(fmt.Sprintf("image %d does not exist for this vehicle", selected)))
		return
	}

	writeJSON(w, h.Log, http.StatusOK, VehicleDetailResponse{
		Locale:      loc.Locale(),
		Vehicle:     vehicle,
		Category:    loc.T(vehicle.Category, "categories"),
		Gallery:     state,
		Strings:     loc.Section("vehicleDetails"),
		BackToFleet: back,
	})
}

func galleryState(v entities.Vehicle, locale string, image int, activate bool) (GalleryState, error) {
	ctrl := gallery.NewController(len(v.Images))
	release := ctrl.Mount(gallery.NewSnapCarousel(len(v.Images)))
	defer release()

	if activate {
		if err := ctrl.ActivateThumbnail(image); err != nil {
			return GalleryState{}, err
		}
	}

	state := GalleryState{
		SelectedIndex: ctrl.SelectedIndex(),
		Thumbnails:    make([]Thumbnail, 0, len(v.Images)),
	}
	for i, src := range v.Images {
		state.Thumbnails = append(state.Thumbnails, Thumbnail{
			Index:  i,
			Src:    src,
			Active: i == state.SelectedIndex,
			Href:   fmt.Sprintf("/%s/vehicle/%s?image=%d", locale, v.ID, i),
		})
	}
	if len(v.Images) > 0 {
		state.SelectedImage = v.Images[state.SelectedIndex]
	}
	return state, nil
}

// ListVehicles serves GET /api/vehicles. ?lang= localizes category labels.
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	spec, err := service.ParseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, apperrors.ErrBadRequest(err.Error()))
		return
	}
	writeJSON(w, h.Log, http.StatusOK, h.search(h.Bundle.FromLocale(r.URL.Query().Get("lang")), spec))
}

func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.Service.FindVehicle(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Log, apperrors.ErrNotFound("Vehicle not found"))
		return
	}
	writeJSON(w, h.Log, http.StatusOK, vehicle)
}

func (h *CatalogHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	lang := mux.Vars(r)["lang"]
	dict, ok := h.Bundle.Dictionary(lang)
	if !ok {
		writeError(w, h.Log, apperrors.ErrNotFound("Unsupported locale"))
		return
	}
	writeJSON(w, h.Log, http.StatusOK, LocaleResponse{Locale: lang, Dictionary: dict})
}

func (h *CatalogHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Log, http.StatusOK, TimeSlotsResponse{Slots: service.TimeSlots()})
}

func (h *CatalogHandler) localizer(r *http.Request) *i18n.Localizer {
	return h.Bundle.FromLocale(mux.Vars(r)["lang"])
}

// search runs the filter and localizes the category options, "all" first.
func (h *CatalogHandler) search(loc *i18n.Localizer, spec entities.FilterSpec) entities.SearchResult {
	res := h.Service.Search(spec)
	options := make([]entities.CategoryOption, 0, len(res.Categories)+1)
	options = append(options, entities.CategoryOption{Value: utils.CategoryAll, Label: loc.T("allCategories", "common")})
	for _, c := range res.Categories {
		options = append(options, entities.CategoryOption{Value: c.Value, Label: loc.T(c.Value, "categories")})
	}
	res.Categories = options
	return res
}
