package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"storefront/internal/messaging"
	"storefront/internal/repository"
	"storefront/internal/uploads"
)

const (
	defaultTimeout = 5 * time.Second
	// uploadTimeout cubre guardar archivos y escribir el documento
	uploadTimeout = 30 * time.Second

	msgInvalidForm = "Invalid form data."
)

// MessageResponse es el cuerpo de todos los errores y confirmaciones
type MessageResponse struct {
	Message string `json:"message"`
}

func init() {
	// los errores de validación usan el nombre JSON del campo
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// invalidFields lista los campos que fallaron la validación, para el log
func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return fields
}

// fail responde 404 con notFound si err es ErrNotFound y 500 con failure en
// cualquier otro caso
func fail(c *gin.Context, log *slog.Logger, err error, notFound, failure string) {
	if notFound != "" && errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, MessageResponse{Message: notFound})
		return
	}
	log.Error(failure, "err", err, "path", c.Request.URL.Path)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: failure})
}

// numericID interpreta el :id de la ruta. Un id que no es entero no puede
// existir, así que se responde como no encontrado.
func numericID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

// formValues adapta los campos de un formulario a catalog.Form
type formValues url.Values

func (f formValues) Value(key string) (string, bool) {
	vs, ok := f[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// parseForm acepta multipart/form-data y application/x-www-form-urlencoded.
// Los archivos solo llegan con multipart.
func parseForm(c *gin.Context) (formValues, map[string][]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err == nil {
		return formValues(c.Request.PostForm), form.File, nil
	}
	if !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, err
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, nil, err
	}
	return formValues(c.Request.PostForm), nil, nil
}

// savedFile es un archivo subido que ya está en disco
type savedFile struct {
	Field string
	URL   string
}

// saveFiles guarda en el directorio de uploads los archivos de los campos
// que acepta keep. Los campos se recorren en orden alfabético y, dentro de
// cada campo, en el orden de recepción.
func saveFiles(c *gin.Context, dir *uploads.Dir, files map[string][]*multipart.FileHeader, keep func(field string) bool) ([]savedFile, error) {
	fields := make([]string, 0, len(files))
	for field := range files {
		if keep(field) {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	var saved []savedFile
	for _, field := range fields {
		for _, fh := range files[field] {
			name := dir.NewName(fh.Filename)
			if err := c.SaveUploadedFile(fh, dir.Path(name)); err != nil {
				removeFiles(dir, saved)
				return nil, err
			}
			saved = append(saved, savedFile{Field: field, URL: dir.URL(name)})
		}
	}
	return saved, nil
}

// saveSingle guarda el primer archivo de field, si vino. url es "" si no hay archivo.
func saveSingle(c *gin.Context, dir *uploads.Dir, files map[string][]*multipart.FileHeader, field string) (string, error) {
	saved, err := saveFiles(c, dir, files, func(f string) bool { return f == field })
	if err != nil || len(saved) == 0 {
		return "", err
	}
	// solo se usa el primero; el resto no debe quedar huérfano
	removeFiles(dir, saved[1:])
	return saved[0].URL, nil
}

// removeFiles deshace saveFiles cuando la operación de la base falla
func removeFiles(dir *uploads.Dir, saved []savedFile) {
	for _, f := range saved {
		_ = dir.Remove(f.URL)
	}
}

// publish envía un evento de dominio. Un fallo del broker no afecta la respuesta.
func publish(ctx context.Context, pub messaging.Publisher, log *slog.Logger, topic, key string, data any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, key, messaging.NewEvent(topic, data)); err != nil {
		log.Warn("Could not publish event", "topic", topic, "key", key, "err", err)
	}
}
