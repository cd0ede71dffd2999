package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"SampleBlog/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestImagesHandler_UploadAndFetch(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "alice@example.com", "alice")
	post := createPost(t, router, token, "p", true)

	data := []byte{9, 8, 7}
	body, ct := multipartImage(t, "pic.jpg", "image/jpeg", data, "alt")
	req := newUploadRequest(t, fmt.Sprintf("/api/images/post/%d", post.ID), token, body, ct)
	rr := serve(router, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
	img := decodeBody[service.ImageDetailsDTO](t, rr)
	assert.Equal(t, fmt.Sprintf("/api/images/%d", img.ID), img.URL)
	assert.Equal(t, "alt", img.AltText)

	// чтение анонимно, байты без искажений
	rr = doJSON(t, router, http.MethodGet, img.URL, "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, data, rr.Body.Bytes())
	assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))

	// список изображений поста анонимно, со ссылками этой группы
	rr = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/images/post/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	list := decodeBody[[]service.ImageDetailsDTO](t, rr)
	if assert.Len(t, list, 1) {
		assert.Equal(t, img.URL, list[0].URL)
	}
}

func TestImagesHandler_MutationsRequireOwnership(t *testing.T) {
	router := newTestRouter(t)
	aliceToken, _ := registerUser(t, router, "alice@example.com", "alice")
	bobToken, _ := registerUser(t, router, "bob@example.com", "bob")
	post := createPost(t, router, aliceToken, "p", true)
	img := uploadImage(t, router, aliceToken, post.ID, []byte{1})

	// без токена изменяющие операции недоступны
	rr := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/images/%d", img.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	body, ct := multipartImage(t, "x.png", "image/png", []byte{1}, "")
	rr = serve(router, newUploadRequest(t, fmt.Sprintf("/api/images/post/%d", post.ID), "", body, ct))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// не владелец поста — 403
	rr = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/images/%d", img.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	body, ct = multipartImage(t, "x.png", "image/png", []byte{1}, "")
	rr = serve(router, newUploadRequest(t, fmt.Sprintf("/api/images/post/%d", post.ID), bobToken, body, ct))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// владелец удаляет — 204; отсутствующее изображение — 404
	rr = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/images/%d", img.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/images/%d", img.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
