package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/topmovies/internal/form"
	"github.com/user/topmovies/internal/model"
	"github.com/user/topmovies/internal/utils"
)

// Home 首页：按评分排序的电影列表
func (h *Handler) Home(c *gin.Context) {
	movies, err := h.Catalog.Ranked(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":  h.title(""),
		"Movies": movies,
	}))
}

// AddPage 添加电影（搜索表单）
func (h *Handler) AddPage(c *gin.Context) {
	h.renderAdd(c, form.FindMovie{}, nil)
}

// Add 提交搜索，展示候选列表
func (h *Handler) Add(c *gin.Context) {
	var f form.FindMovie
	if errs := form.Bind(c, &f); len(errs) > 0 {
		h.renderAdd(c, f, errs)
		return
	}

	results, err := h.Catalog.Search(c.Request.Context(), f.Title)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "select.html", h.RenderData(c, gin.H{
		"Title":   h.title("Select Movie"),
		"Query":   f.Title,
		"Results": results,
	}))
}

func (h *Handler) renderAdd(c *gin.Context, f form.FindMovie, errs form.Errors) {
	c.HTML(http.StatusOK, "add.html", h.RenderData(c, gin.H{
		"Title":  h.title("Add Movie"),
		"Form":   f,
		"Errors": errs,
	}))
}

// Selected 导入选中的电影，然后跳转到编辑页
func (h *Handler) Selected(c *gin.Context) {
	externalID, err := strconv.Atoi(c.Query("id"))
	if err != nil || externalID <= 0 {
		h.badRequest(c, "Invalid movie id.")
		return
	}

	result, err := h.Catalog.Import(c.Request.Context(), externalID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !result.Created {
		h.flash(c, "“"+result.Movie.Title+"” is already in your list.")
	}
	c.Redirect(http.StatusFound, editURL(result.Movie.ID))
}

// EditPage 编辑评分/短评
func (h *Handler) EditPage(c *gin.Context) {
	movie, ok := h.loadMovie(c)
	if !ok {
		return
	}

	h.renderEdit(c, movie, form.Edit{
		Rating: movie.RatingText(),
		Review: movie.ReviewText(),
	}, nil)
}

// Edit 保存评分/短评
func (h *Handler) Edit(c *gin.Context) {
	movie, ok := h.loadMovie(c)
	if !ok {
		return
	}

	var f form.Edit
	errs := form.Bind(c, &f)
	rating, err := f.ParseRating()
	var fieldErr *form.FieldError
	if errors.As(err, &fieldErr) {
		errs = errs.Add(fieldErr.Field, fieldErr.Message)
	}
	if len(errs) > 0 {
		h.renderEdit(c, movie, f, errs)
		return
	}

	updated, err := h.Catalog.UpdateReview(c.Request.Context(), movie.ID, rating, f.Review)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.flash(c, "Saved “"+updated.Title+"”.")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) renderEdit(c *gin.Context, movie *model.Movie, f form.Edit, errs form.Errors) {
	c.HTML(http.StatusOK, "edit.html", h.RenderData(c, gin.H{
		"Title":  h.title("Edit " + movie.Title),
		"Movie":  movie,
		"Form":   f,
		"Errors": errs,
	}))
}

// Delete 删除电影
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Query("id"))
	if !ok {
		h.badRequest(c, "Invalid movie id.")
		return
	}

	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.flash(c, "Movie deleted.")
	c.Redirect(http.StatusFound, "/")
}

// loadMovie 解析 id 查询参数并加载电影，失败时已写入响应
func (h *Handler) loadMovie(c *gin.Context) (*model.Movie, bool) {
	id, ok := utils.ParseID(c.Query("id"))
	if !ok {
		h.badRequest(c, "Invalid movie id.")
		return nil, false
	}

	movie, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return movie, true
}

func editURL(id uint) string {
	return "/edit?id=" + strconv.FormatUint(uint64(id), 10)
}
